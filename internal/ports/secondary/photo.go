// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// PhotoRepository defines the secondary port for photo record persistence.
type PhotoRepository interface {
	// Create persists a new photo record. Seq and CreatedAt are assigned by storage.
	Create(ctx context.Context, photo *PhotoRecord) error

	// GetByID retrieves a photo by its ID. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*PhotoRecord, error)

	// List retrieves photos matching the given filters, newest first.
	List(ctx context.Context, filters PhotoFilters) ([]*PhotoRecord, error)

	// SetProcessed updates the processed flag.
	SetProcessed(ctx context.Context, id string, processed bool) error

	// MaxSeq returns the highest assigned sequence number, or 0 when empty.
	MaxSeq(ctx context.Context) (int64, error)

	// ListAfterSeq returns records with seq > after in ascending seq order.
	ListAfterSeq(ctx context.Context, after int64, limit int) ([]*PhotoRecord, error)
}

// PhotoRecord represents a photo as stored in persistence.
type PhotoRecord struct {
	ID        string
	Seq       int64
	ImageRef  string // direct URL or internal storage path
	Name      string
	Role      string
	Processed bool
	CreatedAt string
}

// PhotoFilters contains filter options for querying photos.
type PhotoFilters struct {
	Processed *bool
	Search    string // matches name or role, case-insensitive
	Limit     int
}
