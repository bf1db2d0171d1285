package primary

import "context"

// PhotoService defines the primary port for photo record operations.
type PhotoService interface {
	// AddPhoto records a newly captured photo.
	AddPhoto(ctx context.Context, req AddPhotoRequest) (*Photo, error)

	// GetPhoto retrieves a photo by ID.
	GetPhoto(ctx context.Context, photoID string) (*Photo, error)

	// ListPhotos lists photos matching the filters, newest first.
	ListPhotos(ctx context.Context, filters PhotoFilters) ([]*Photo, error)

	// MarkProcessed sets or clears the processed flag.
	MarkProcessed(ctx context.Context, photoID string, processed bool) error
}

// AddPhotoRequest contains parameters for recording a photo.
type AddPhotoRequest struct {
	ImageRef string
	Name     string
	Role     string
}

// PhotoFilters contains filter options for listing photos.
type PhotoFilters struct {
	Processed *bool
	Search    string
	Limit     int
}

// Photo represents a photo record at the port boundary.
type Photo struct {
	ID        string
	ImageRef  string
	Name      string
	Role      string
	Processed bool
	CreatedAt string
}
