// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const photoColumns = "seq, id, image_ref, name, role, processed, created_at"

// PhotoRepository implements secondary.PhotoRepository with SQLite.
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new SQLite photo repository.
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create persists a new photo and fills in its assigned Seq and CreatedAt.
func (r *PhotoRepository) Create(ctx context.Context, photo *secondary.PhotoRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO photos (id, image_ref, name, role, processed) VALUES (?, ?, ?, ?, ?)",
		photo.ID, photo.ImageRef, photo.Name, photo.Role, boolToInt(photo.Processed),
	)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read photo seq: %w", err)
	}
	photo.Seq = seq
	return nil
}

// GetByID retrieves a photo by its ID.
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*secondary.PhotoRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+photoColumns+" FROM photos WHERE id = ?", id)
	record, err := scanPhoto(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("photo %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return record, nil
}

// List retrieves photos matching the filters, newest first.
func (r *PhotoRepository) List(ctx context.Context, filters secondary.PhotoFilters) ([]*secondary.PhotoRecord, error) {
	query := "SELECT " + photoColumns + " FROM photos WHERE 1=1"
	var args []any

	if filters.Processed != nil {
		query += " AND processed = ?"
		args = append(args, boolToInt(*filters.Processed))
	}
	if s := strings.TrimSpace(filters.Search); s != "" {
		query += " AND (name LIKE ? OR role LIKE ?)"
		pattern := "%" + s + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY seq DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	return r.queryPhotos(ctx, query, args...)
}

// SetProcessed updates the processed flag.
func (r *PhotoRepository) SetProcessed(ctx context.Context, id string, processed bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE photos SET processed = ? WHERE id = ?", boolToInt(processed), id)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("photo %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// MaxSeq returns the highest assigned sequence number.
func (r *PhotoRepository) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) FROM photos").Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read max seq: %w", err)
	}
	return seq, nil
}

// ListAfterSeq returns records created after the given seq, oldest first.
func (r *PhotoRepository) ListAfterSeq(ctx context.Context, after int64, limit int) ([]*secondary.PhotoRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.queryPhotos(ctx,
		"SELECT "+photoColumns+" FROM photos WHERE seq > ? ORDER BY seq ASC LIMIT ?",
		after, limit,
	)
}

func (r *PhotoRepository) queryPhotos(ctx context.Context, query string, args ...any) ([]*secondary.PhotoRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*secondary.PhotoRecord
	for rows.Next() {
		record, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*secondary.PhotoRecord, error) {
	var (
		createdAt    time.Time
		processedInt int
	)
	record := &secondary.PhotoRecord{}
	err := row.Scan(&record.Seq, &record.ID, &record.ImageRef, &record.Name, &record.Role, &processedInt, &createdAt)
	if err != nil {
		return nil, err
	}
	record.Processed = processedInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ secondary.PhotoRepository = (*PhotoRepository)(nil)
