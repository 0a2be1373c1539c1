package media

import "errors"

// ErrNoFiles is returned when a submission contains no files; no I/O is
// performed in that case.
var ErrNoFiles = errors.New("no file selected")

// ErrInvalidOffset is returned when a gallery page is requested with a
// negative offset.
var ErrInvalidOffset = errors.New("offset must be non-negative")
