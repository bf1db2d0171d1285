// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
)

// PhotoAdapter is a thin adapter that translates CLI operations to PhotoService calls.
// It depends only on the PhotoService interface, enabling easy testing with mocks.
type PhotoAdapter struct {
	service primary.PhotoService
	out     io.Writer
}

// NewPhotoAdapter creates a new PhotoAdapter with the given service.
func NewPhotoAdapter(service primary.PhotoService, out io.Writer) *PhotoAdapter {
	return &PhotoAdapter{
		service: service,
		out:     out,
	}
}

// Add records a new photo.
func (a *PhotoAdapter) Add(ctx context.Context, imageRef, name, role string) (*primary.Photo, error) {
	photo, err := a.service.AddPhoto(ctx, primary.AddPhotoRequest{
		ImageRef: imageRef,
		Name:     name,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Added photo %s\n", photo.ID)
	return photo, nil
}

// List lists photos, optionally only the ones not yet processed.
func (a *PhotoAdapter) List(ctx context.Context, pendingOnly bool, search string, limit int) error {
	filters := primary.PhotoFilters{Search: search, Limit: limit}
	if pendingOnly {
		pending := false
		filters.Processed = &pending
	}

	photos, err := a.service.ListPhotos(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list photos: %w", err)
	}

	if len(photos) == 0 {
		fmt.Fprintln(a.out, "No photos found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s %-8s %-20s %-12s %s\n", "ID", "STATUS", "NAME", "ROLE", "CREATED")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────────────")
	for _, p := range photos {
		fmt.Fprintf(a.out, "%-36s %-8s %-20s %-12s %s\n", p.ID, statusLabel(p.Processed), orDash(p.Name), orDash(p.Role), p.CreatedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a single photo.
func (a *PhotoAdapter) Show(ctx context.Context, photoID string) (*primary.Photo, error) {
	photo, err := a.service.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	fmt.Fprintf(a.out, "\nPhoto:   %s\n", photo.ID)
	fmt.Fprintf(a.out, "Image:   %s\n", photo.ImageRef)
	if photo.Name != "" {
		fmt.Fprintf(a.out, "Name:    %s\n", photo.Name)
	}
	if photo.Role != "" {
		fmt.Fprintf(a.out, "Role:    %s\n", photo.Role)
	}
	fmt.Fprintf(a.out, "Status:  %s\n", statusLabel(photo.Processed))
	fmt.Fprintf(a.out, "Created: %s\n", photo.CreatedAt)
	fmt.Fprintln(a.out)

	return photo, nil
}

// SetProcessed marks a photo done or back to pending.
func (a *PhotoAdapter) SetProcessed(ctx context.Context, photoID string, processed bool) error {
	if err := a.service.MarkProcessed(ctx, photoID, processed); err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Photo %s marked %s\n", photoID, statusLabel(processed))
	return nil
}

func statusLabel(processed bool) string {
	if processed {
		return "done"
	}
	return "pending"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
