package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/guestpix/service/internal/storage"
)

// PageSize is the fixed number of gallery records per page.
const PageSize = 12

// MetadataRepo is the persistence surface the service needs; *Repository
// implements it against Postgres.
type MetadataRepo interface {
	Insert(ctx context.Context, rec *Record) (*Record, error)
	ListPage(ctx context.Context, limit, offset int) ([]Record, error)
}

// SubmitFile is one file of a guest submission. Open is called at most once,
// only after the file passes validation.
type SubmitFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Outcome statuses for a single file within a submission.
const (
	StatusStored         = "stored"
	StatusRejected       = "rejected"
	StatusUploadFailed   = "upload_failed"
	StatusMetadataFailed = "metadata_failed"
)

// Outcome reports what happened to one file of a submission.
type Outcome struct {
	File     string `json:"file"`
	Status   string `json:"status"`
	FilePath string `json:"filePath,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// GalleryItem is a Record plus its resolved public URL.
type GalleryItem struct {
	Record
	PublicURL string `json:"publicUrl"`
	IsVideo   bool   `json:"isVideo"`
}

// Page is one gallery page. HasMore is false exactly when this is the last
// page of the result set.
type Page struct {
	Items   []GalleryItem `json:"items"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"hasMore"`
}

// Service contains the business logic for submissions and the gallery.
type Service struct {
	repo     MetadataRepo
	store    storage.Storage
	maxBytes int64
}

// NewService creates a new media Service. maxBytes caps individual file size;
// zero or negative disables the cap.
func NewService(repo MetadataRepo, store storage.Storage, maxBytes int64) *Service {
	return &Service{repo: repo, store: store, maxBytes: maxBytes}
}

// Submit processes the files of one guest submission strictly in input
// order. Each file is handled independently: a failed blob write or metadata
// insert is reported in its Outcome and processing continues with the next
// file. The only error returned is ErrNoFiles for an empty submission.
func (s *Service) Submit(ctx context.Context, guestName, caption string, files []SubmitFile) ([]Outcome, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	outcomes := make([]Outcome, 0, len(files))
	for _, f := range files {
		outcomes = append(outcomes, s.submitOne(ctx, guestName, caption, f))
	}
	return outcomes, nil
}

func (s *Service) submitOne(ctx context.Context, guestName, caption string, f SubmitFile) Outcome {
	contentType := resolveContentType(f)

	if reason := s.validate(f, contentType); reason != "" {
		return Outcome{File: f.Name, Status: StatusRejected, Reason: reason}
	}

	reader, err := f.Open()
	if err != nil {
		log.Printf("media: open %q: %v", f.Name, err)
		return Outcome{File: f.Name, Status: StatusUploadFailed, Reason: "could not read file"}
	}
	defer reader.Close()

	key := storageKey(f.Name)
	if err := s.store.Upload(ctx, key, reader, f.Size, contentType); err != nil {
		log.Printf("media: upload %q as %q: %v", f.Name, key, err)
		return Outcome{File: f.Name, Status: StatusUploadFailed, Reason: "storage write failed"}
	}

	rec := &Record{
		FilePath:     key,
		OriginalName: f.Name,
		ContentType:  contentType,
		GuestName:    optional(guestName),
		Caption:      optional(caption),
	}
	if _, err := s.repo.Insert(ctx, rec); err != nil {
		// The blob exists without a visible record now. The dual write is
		// not transactional; orphans are cleaned up out of band.
		log.Printf("media: orphaned blob %q, metadata insert failed: %v", key, err)
		return Outcome{File: f.Name, Status: StatusMetadataFailed, FilePath: key, Reason: "metadata insert failed"}
	}

	return Outcome{File: f.Name, Status: StatusStored, FilePath: key}
}

// validate returns a rejection reason, or "" when the file is acceptable.
func (s *Service) validate(f SubmitFile, contentType string) string {
	if s.maxBytes > 0 && f.Size > s.maxBytes {
		return fmt.Sprintf("file exceeds %d byte limit", s.maxBytes)
	}
	if !allowedContentType(contentType) {
		return fmt.Sprintf("unsupported content type %q", contentType)
	}
	return ""
}

// LoadPage returns one gallery page starting at offset, newest-first, with
// each record's public URL resolved. It probes one row past PageSize so
// HasMore is false exactly on the last page, including when the result set
// ends on a page boundary.
func (s *Service) LoadPage(ctx context.Context, offset int) (*Page, error) {
	if offset < 0 {
		return nil, ErrInvalidOffset
	}

	records, err := s.repo.ListPage(ctx, PageSize+1, offset)
	if err != nil {
		return nil, fmt.Errorf("load gallery page: %w", err)
	}

	hasMore := len(records) > PageSize
	if hasMore {
		records = records[:PageSize]
	}

	items := make([]GalleryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, GalleryItem{
			Record:    rec,
			PublicURL: s.store.PublicURL(rec.FilePath),
			IsVideo:   isVideo(rec),
		})
	}

	return &Page{Items: items, Offset: offset, HasMore: hasMore}, nil
}

// resolveContentType prefers the declared MIME type from the multipart part,
// falling back to the filename extension.
func resolveContentType(f SubmitFile) string {
	ct := strings.TrimSpace(f.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); byExt != "" {
		return byExt
	}
	return ct
}

// allowedContentType mirrors the upload form's accept list: any image plus
// the two video containers guests' phones actually produce.
func allowedContentType(ct string) bool {
	if strings.HasPrefix(ct, "image/") {
		return true
	}
	switch ct {
	case "video/mp4", "video/quicktime":
		return true
	}
	return false
}

// isVideo decides how a record renders. The stored content type is
// authoritative; the URL-substring check only covers rows written before
// content_type existed.
func isVideo(rec Record) bool {
	if rec.ContentType != "" {
		return strings.HasPrefix(rec.ContentType, "video/")
	}
	return strings.Contains(rec.FilePath, ".mp4") || strings.Contains(rec.FilePath, "video")
}

// optional maps the empty string to NULL so "Anonymous" stays a render-time
// default rather than stored data.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
