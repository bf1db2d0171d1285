package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/helena-commits/badge-capture-stream/internal/core/notice"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockPhotoRepository implements secondary.PhotoRepository for testing.
type mockPhotoRepository struct {
	photos    map[string]*secondary.PhotoRecord
	seq       int64
	createErr error
	getErr    error
	listErr   error
}

func newMockPhotoRepository() *mockPhotoRepository {
	return &mockPhotoRepository{photos: make(map[string]*secondary.PhotoRecord)}
}

func (m *mockPhotoRepository) Create(ctx context.Context, photo *secondary.PhotoRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	photo.Seq = m.seq
	photo.CreatedAt = "2026-01-01T00:00:00Z"
	copied := *photo
	m.photos[photo.ID] = &copied
	return nil
}

func (m *mockPhotoRepository) GetByID(ctx context.Context, id string) (*secondary.PhotoRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.photos[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("photo %s: %w", id, secondary.ErrNotFound)
}

func (m *mockPhotoRepository) List(ctx context.Context, filters secondary.PhotoFilters) ([]*secondary.PhotoRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.PhotoRecord
	for _, p := range m.photos {
		if filters.Processed != nil && p.Processed != *filters.Processed {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Role), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPhotoRepository) SetProcessed(ctx context.Context, id string, processed bool) error {
	p, ok := m.photos[id]
	if !ok {
		return fmt.Errorf("photo %s: %w", id, secondary.ErrNotFound)
	}
	p.Processed = processed
	return nil
}

func (m *mockPhotoRepository) MaxSeq(ctx context.Context) (int64, error) {
	return m.seq, nil
}

func (m *mockPhotoRepository) ListAfterSeq(ctx context.Context, after int64, limit int) ([]*secondary.PhotoRecord, error) {
	return nil, nil
}

// mockChangeFeed implements secondary.ChangeFeed for testing.
type mockChangeFeed struct {
	handler      secondary.InsertHandler
	subscribeErr error
	unsubscribed int
}

func (m *mockChangeFeed) Subscribe(ctx context.Context, onInsert secondary.InsertHandler) (secondary.Unsubscribe, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}
	m.handler = onInsert
	return func() { m.unsubscribed++ }, nil
}

func (m *mockChangeFeed) deliver(ctx context.Context, photo *secondary.PhotoRecord) {
	m.handler(ctx, photo)
}

// mockDeviceStore implements secondary.DeviceSettingsStore for testing.
type mockDeviceStore struct {
	settings secondary.DeviceSettings
	loadErr  error
	saveErr  error
	saves    int
}

func (m *mockDeviceStore) LoadDevice(ctx context.Context) (secondary.DeviceSettings, error) {
	if m.loadErr != nil {
		return secondary.DeviceSettings{}, m.loadErr
	}
	return m.settings, nil
}

func (m *mockDeviceStore) SaveDevice(ctx context.Context, settings secondary.DeviceSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.settings = settings
	return nil
}

// mockSessionStore implements secondary.SessionStore for testing.
type mockSessionStore struct {
	settings secondary.SessionSettings
}

func (m *mockSessionStore) LoadSession() secondary.SessionSettings { return m.settings }

func (m *mockSessionStore) SaveSession(settings secondary.SessionSettings) { m.settings = settings }

// navigation records one Navigate call.
type navigation struct {
	TabID string
	URL   string
}

// mockTabDriver implements secondary.TabDriver for testing.
// Tabs live in a map; closeByUser simulates the operator closing a tab.
type mockTabDriver struct {
	tabs        map[string]string
	nextID      int
	openErr     error
	probeErr    error
	navigateErr error
	opened      []string
	navigations []navigation
	closed      []string
	focused     []string
}

func newMockTabDriver() *mockTabDriver {
	return &mockTabDriver{tabs: make(map[string]string)}
}

func (m *mockTabDriver) Open(ctx context.Context, url string) (secondary.TabHandle, error) {
	if m.openErr != nil {
		return secondary.TabHandle{}, m.openErr
	}
	m.nextID++
	id := fmt.Sprintf("tab-%d", m.nextID)
	m.tabs[id] = url
	m.opened = append(m.opened, url)
	return secondary.TabHandle{ID: id}, nil
}

func (m *mockTabDriver) IsOpen(ctx context.Context, handle secondary.TabHandle) (bool, error) {
	if m.probeErr != nil {
		return false, m.probeErr
	}
	_, ok := m.tabs[handle.ID]
	return ok, nil
}

func (m *mockTabDriver) Navigate(ctx context.Context, handle secondary.TabHandle, url string) error {
	if m.navigateErr != nil {
		return m.navigateErr
	}
	if _, ok := m.tabs[handle.ID]; !ok {
		return secondary.ErrTabClosed
	}
	m.tabs[handle.ID] = url
	m.navigations = append(m.navigations, navigation{TabID: handle.ID, URL: url})
	return nil
}

func (m *mockTabDriver) Focus(ctx context.Context, handle secondary.TabHandle) error {
	m.focused = append(m.focused, handle.ID)
	return nil
}

func (m *mockTabDriver) Close(ctx context.Context, handle secondary.TabHandle) error {
	delete(m.tabs, handle.ID)
	m.closed = append(m.closed, handle.ID)
	return nil
}

func (m *mockTabDriver) closeByUser(id string) {
	delete(m.tabs, id)
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	mu      sync.Mutex
	notices []notice.Notice
}

func (m *mockNotifier) Notify(ctx context.Context, n notice.Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, n)
}

func (m *mockNotifier) kinds() []notice.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notice.Kind, len(m.notices))
	for i, n := range m.notices {
		out[i] = n.Kind
	}
	return out
}

func (m *mockNotifier) count(kind notice.Kind) int {
	n := 0
	for _, k := range m.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

// mockSigner implements secondary.SignedURLProvider for testing.
type mockSigner struct {
	err   error
	calls []string
	ttls  []int
}

func (m *mockSigner) ResolveSignedURL(ctx context.Context, path string, ttlSeconds int) (string, error) {
	m.calls = append(m.calls, path)
	m.ttls = append(m.ttls, ttlSeconds)
	if m.err != nil {
		return "", &secondary.StorageError{Path: path, Err: m.err}
	}
	return "https://storage.example.com/signed/" + path + "?token=t", nil
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
