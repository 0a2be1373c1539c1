// Package media manages guest uploads and the paginated gallery over them.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one row of media_metadata: a single stored blob plus its
// guest-supplied display fields.
type Record struct {
	ID           string    `json:"id"`
	FilePath     string    `json:"filePath"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	GuestName    *string   `json:"guestName,omitempty"`
	Caption      *string   `json:"caption,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository handles all media metadata database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert persists a new metadata record and returns it with the
// server-assigned id and created_at.
func (r *Repository) Insert(ctx context.Context, rec *Record) (*Record, error) {
	out := &Record{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO media_metadata (file_path, original_name, content_type, guest_name, caption)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, file_path, original_name, content_type, guest_name, caption, created_at`,
		rec.FilePath, rec.OriginalName, rec.ContentType, rec.GuestName, rec.Caption,
	).Scan(&out.ID, &out.FilePath, &out.OriginalName, &out.ContentType, &out.GuestName, &out.Caption, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert media record: %w", err)
	}
	return out, nil
}

// ListPage fetches up to limit records ordered newest-first, skipping offset
// rows. id breaks created_at ties so page boundaries are stable.
func (r *Repository) ListPage(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, file_path, original_name, content_type, guest_name, caption, created_at
		 FROM media_metadata
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list media page: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.FilePath, &rec.OriginalName, &rec.ContentType,
			&rec.GuestName, &rec.Caption, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media records: %w", err)
	}
	return records, nil
}
