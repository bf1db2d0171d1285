package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// PhotoServiceImpl implements the PhotoService interface.
type PhotoServiceImpl struct {
	photoRepo secondary.PhotoRepository
}

// NewPhotoService creates a new PhotoService with injected dependencies.
func NewPhotoService(photoRepo secondary.PhotoRepository) *PhotoServiceImpl {
	return &PhotoServiceImpl{
		photoRepo: photoRepo,
	}
}

// AddPhoto records a newly captured photo under a fresh ID.
func (s *PhotoServiceImpl) AddPhoto(ctx context.Context, req primary.AddPhotoRequest) (*primary.Photo, error) {
	imageRef := strings.TrimSpace(req.ImageRef)
	if imageRef == "" {
		return nil, fmt.Errorf("image reference is required")
	}

	record := &secondary.PhotoRecord{
		ID:       uuid.NewString(),
		ImageRef: imageRef,
		Name:     strings.TrimSpace(req.Name),
		Role:     strings.TrimSpace(req.Role),
	}
	if err := s.photoRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	created, err := s.photoRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created photo: %w", err)
	}
	return s.recordToPhoto(created), nil
}

// GetPhoto retrieves a photo by ID.
func (s *PhotoServiceImpl) GetPhoto(ctx context.Context, photoID string) (*primary.Photo, error) {
	record, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return s.recordToPhoto(record), nil
}

// ListPhotos lists photos matching the filters.
func (s *PhotoServiceImpl) ListPhotos(ctx context.Context, filters primary.PhotoFilters) ([]*primary.Photo, error) {
	records, err := s.photoRepo.List(ctx, secondary.PhotoFilters{
		Processed: filters.Processed,
		Search:    strings.TrimSpace(filters.Search),
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]*primary.Photo, len(records))
	for i, r := range records {
		photos[i] = s.recordToPhoto(r)
	}
	return photos, nil
}

// MarkProcessed sets or clears the processed flag.
func (s *PhotoServiceImpl) MarkProcessed(ctx context.Context, photoID string, processed bool) error {
	return s.photoRepo.SetProcessed(ctx, photoID, processed)
}

func (s *PhotoServiceImpl) recordToPhoto(r *secondary.PhotoRecord) *primary.Photo {
	return &primary.Photo{
		ID:        r.ID,
		ImageRef:  r.ImageRef,
		Name:      r.Name,
		Role:      r.Role,
		Processed: r.Processed,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure PhotoServiceImpl implements the interface.
var _ primary.PhotoService = (*PhotoServiceImpl)(nil)
