package cli

import (
	"context"
	"time"

	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
)

// mockPhotoService implements primary.PhotoService for testing
type mockPhotoService struct {
	addPhotoFn      func(ctx context.Context, req primary.AddPhotoRequest) (*primary.Photo, error)
	getPhotoFn      func(ctx context.Context, photoID string) (*primary.Photo, error)
	listPhotosFn    func(ctx context.Context, filters primary.PhotoFilters) ([]*primary.Photo, error)
	markProcessedFn func(ctx context.Context, photoID string, processed bool) error

	// Track calls for verification
	lastAddReq    primary.AddPhotoRequest
	lastFilters   primary.PhotoFilters
	lastMarkID    string
	lastMarkValue bool
}

func (m *mockPhotoService) AddPhoto(ctx context.Context, req primary.AddPhotoRequest) (*primary.Photo, error) {
	m.lastAddReq = req
	if m.addPhotoFn != nil {
		return m.addPhotoFn(ctx, req)
	}
	return &primary.Photo{ID: "p-001", ImageRef: req.ImageRef, Name: req.Name}, nil
}

func (m *mockPhotoService) GetPhoto(ctx context.Context, photoID string) (*primary.Photo, error) {
	if m.getPhotoFn != nil {
		return m.getPhotoFn(ctx, photoID)
	}
	return &primary.Photo{ID: photoID, ImageRef: "captures/a.jpg", CreatedAt: "2026-01-01T09:00:00Z"}, nil
}

func (m *mockPhotoService) ListPhotos(ctx context.Context, filters primary.PhotoFilters) ([]*primary.Photo, error) {
	m.lastFilters = filters
	if m.listPhotosFn != nil {
		return m.listPhotosFn(ctx, filters)
	}
	return []*primary.Photo{}, nil
}

func (m *mockPhotoService) MarkProcessed(ctx context.Context, photoID string, processed bool) error {
	m.lastMarkID = photoID
	m.lastMarkValue = processed
	if m.markProcessedFn != nil {
		return m.markProcessedFn(ctx, photoID, processed)
	}
	return nil
}

// mockDispatchController implements primary.DispatchController for testing
type mockDispatchController struct {
	setAutoDispatchFn func(ctx context.Context, enabled bool) error
	armFn             func(ctx context.Context) error
	dispatchManualFn  func(ctx context.Context, photoID string) (*primary.ManualDispatchResponse, error)
	previewTargetFn   func(ctx context.Context, photoID string) (string, error)

	status  primary.DispatchStatus
	calls   []string
	enabled []bool
}

func (m *mockDispatchController) Start(ctx context.Context) error {
	m.calls = append(m.calls, "start")
	return nil
}

func (m *mockDispatchController) Close(ctx context.Context) {
	m.calls = append(m.calls, "close")
}

func (m *mockDispatchController) SetAutoDispatch(ctx context.Context, enabled bool) error {
	m.calls = append(m.calls, "set")
	m.enabled = append(m.enabled, enabled)
	if m.setAutoDispatchFn != nil {
		return m.setAutoDispatchFn(ctx, enabled)
	}
	return nil
}

func (m *mockDispatchController) Arm(ctx context.Context) error {
	m.calls = append(m.calls, "arm")
	if m.armFn != nil {
		return m.armFn(ctx)
	}
	m.status.TabID = "T1"
	return nil
}

func (m *mockDispatchController) Disarm(ctx context.Context) error {
	m.calls = append(m.calls, "disarm")
	return nil
}

func (m *mockDispatchController) DispatchManual(ctx context.Context, photoID string) (*primary.ManualDispatchResponse, error) {
	m.calls = append(m.calls, "open")
	if m.dispatchManualFn != nil {
		return m.dispatchManualFn(ctx, photoID)
	}
	return &primary.ManualDispatchResponse{PhotoID: photoID, TabID: "T9", TargetURL: "https://badges.example.com/?photo=x"}, nil
}

func (m *mockDispatchController) PreviewTarget(ctx context.Context, photoID string) (string, error) {
	m.calls = append(m.calls, "url")
	if m.previewTargetFn != nil {
		return m.previewTargetFn(ctx, photoID)
	}
	return "https://badges.example.com/?photo=" + photoID, nil
}

func (m *mockDispatchController) Status(ctx context.Context) primary.DispatchStatus {
	return m.status
}

var fixedTime = time.Date(2026, 1, 1, 9, 15, 0, 0, time.UTC)
