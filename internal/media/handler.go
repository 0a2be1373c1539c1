package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/guestpix/service/internal/response"
)

// multipartMemoryLimit is how much of a submission is held in memory before
// parts spill to temp files.
const multipartMemoryLimit = 32 << 20

// Handler holds HTTP handlers for media endpoints.
type Handler struct {
	svc        *Service
	maxRequest int64
}

// NewHandler creates a new media Handler. maxRequest caps the size of one
// whole multipart submission before any parsing; zero or negative disables
// the cap.
func NewHandler(svc *Service, maxRequest int64) *Handler {
	return &Handler{svc: svc, maxRequest: maxRequest}
}

type submitResult struct {
	Results []Outcome `json:"results"`
	Stored  int       `json:"stored"`
}

// Submit godoc
//
//	@Summary		Upload guest media
//	@Description	Accepts one or more image/video files with an optional guest name and caption. Files are processed independently; a failure on one file never aborts the rest. The per-file outcome list reports stored, rejected, upload_failed, or metadata_failed for each.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			files		formData	file	true	"One or more media files"
//	@Param			guest_name	formData	string	false	"Guest display name"
//	@Param			caption		formData	string	false	"Caption shown under each item"
//	@Success		200			{object}	response.Envelope{data=submitResult}
//	@Failure		400			{object}	response.Envelope
//	@Failure		413			{object}	response.Envelope
//	@Failure		429			{object}	response.Envelope
//	@Router			/media [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	// Cap the body before parsing; otherwise a client could spool an
	// arbitrarily large upload to temp files before any size check runs.
	if h.maxRequest > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequest)
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		response.BadRequest(w, "invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	headers := r.MultipartForm.File["files"]
	files := make([]SubmitFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, SubmitFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	outcomes, err := h.svc.Submit(r.Context(),
		r.FormValue("guest_name"), r.FormValue("caption"), files)
	if err != nil {
		if errors.Is(err, ErrNoFiles) {
			response.BadRequest(w, "no file selected")
			return
		}
		response.InternalError(w)
		return
	}

	stored := 0
	for _, o := range outcomes {
		if o.Status == StatusStored {
			stored++
		}
	}

	response.OK(w, submitResult{Results: outcomes, Stored: stored})
}

// ListPage godoc
//
//	@Summary		Load a gallery page
//	@Description	Returns up to 12 records newest-first starting at offset, each with its resolved public URL. hasMore is false exactly on the last page.
//	@Tags			media
//	@Produce		json
//	@Param			offset	query		int	false	"Zero-based record offset"	default(0)
//	@Success		200		{object}	response.Envelope{data=Page}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/media [get]
func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "offset must be an integer")
			return
		}
		offset = n
	}

	page, err := h.svc.LoadPage(r.Context(), offset)
	if err != nil {
		if errors.Is(err, ErrInvalidOffset) {
			response.BadRequest(w, "offset must be non-negative")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, page)
}
