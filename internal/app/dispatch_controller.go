package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/helena-commits/badge-capture-stream/internal/core/dispatch"
	"github.com/helena-commits/badge-capture-stream/internal/core/notice"
	"github.com/helena-commits/badge-capture-stream/internal/ctxutil"
	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// DefaultMinDispatchInterval is the minimum spacing between two auto-dispatches.
const DefaultMinDispatchInterval = 2 * time.Second

// DispatchDeps are the collaborators of the dispatch controller.
type DispatchDeps struct {
	Photos   secondary.PhotoRepository
	Feed     secondary.ChangeFeed
	Device   secondary.DeviceSettingsStore
	Session  secondary.SessionStore
	Resolver *TargetResolver
	Tabs     *TabManager
	Notifier secondary.Notifier
	Logger   *zap.Logger
}

// DispatchOptions tune the controller.
type DispatchOptions struct {
	MinInterval time.Duration
	Now         func() time.Time
}

// DispatchControllerImpl implements the DispatchController interface.
//
// State-changing operations hold mu for their whole duration, including signed-URL
// resolution and tab navigation, so events are handled one at a time in
// feed order and never interleave with operator actions.
type DispatchControllerImpl struct {
	mu sync.Mutex

	photos   secondary.PhotoRepository
	feed     secondary.ChangeFeed
	device   secondary.DeviceSettingsStore
	session  secondary.SessionStore
	resolver *TargetResolver
	tabs     *TabManager
	notifier secondary.Notifier
	logger   *zap.Logger

	limiter *rate.Limiter
	now     func() time.Time

	enabled        bool
	armed          bool
	dispatched     map[string]struct{}
	lastDispatchAt time.Time
	unsubscribe    secondary.Unsubscribe
}

// NewDispatchController creates a controller and rehydrates its state from
// the device and session stores.
func NewDispatchController(ctx context.Context, deps DispatchDeps, opts DispatchOptions) (*DispatchControllerImpl, error) {
	if opts.MinInterval == 0 {
		opts.MinInterval = DefaultMinDispatchInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &DispatchControllerImpl{
		photos:     deps.Photos,
		feed:       deps.Feed,
		device:     deps.Device,
		session:    deps.Session,
		resolver:   deps.Resolver,
		tabs:       deps.Tabs,
		notifier:   deps.Notifier,
		logger:     logger.Named("dispatch"),
		limiter:    rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		now:        opts.Now,
		dispatched: make(map[string]struct{}),
	}

	if err := c.rehydrate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *DispatchControllerImpl) rehydrate(ctx context.Context) error {
	device, err := c.device.LoadDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to load device settings: %w", err)
	}
	sess := c.session.LoadSession()

	c.enabled = device.AutoDispatchEnabled
	c.armed = dispatch.RehydrateArmed(c.enabled, sess.Armed, c.tabs.HasHandle())
	for _, id := range sess.DispatchedIDs {
		c.dispatched[id] = struct{}{}
	}
	c.saveSession()

	c.logger.Debug("rehydrated dispatch state",
		zap.Bool("enabled", c.enabled),
		zap.Bool("armed", c.armed),
		zap.Int("dispatched", len(c.dispatched)),
	)
	return nil
}

// Start subscribes to the change feed.
func (c *DispatchControllerImpl) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unsubscribe != nil {
		return nil
	}
	unsub, err := c.feed.Subscribe(ctx, func(ctx context.Context, photo *secondary.PhotoRecord) {
		c.HandleInsert(ctx, photo)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to photo feed: %w", err)
	}
	c.unsubscribe = unsub
	return nil
}

// Close unsubscribes from the change feed and disarms the badge tab.
func (c *DispatchControllerImpl) Close(ctx context.Context) {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	// The feed may be inside HandleInsert waiting for mu; unsubscribe unlocked.
	if unsub != nil {
		unsub()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked(ctx)
}

// SetAutoDispatch toggles auto-dispatch and persists it for the device.
func (c *DispatchControllerImpl) SetAutoDispatch(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !enabled {
		c.disarmLocked(ctx)
	}
	c.enabled = enabled
	if err := c.device.SaveDevice(ctx, secondary.DeviceSettings{AutoDispatchEnabled: enabled}); err != nil {
		return fmt.Errorf("failed to save auto-dispatch setting: %w", err)
	}

	c.logger.Info("auto-dispatch toggled", zap.Bool("enabled", enabled))
	c.notifier.Notify(ctx, notice.AutoDispatch(enabled))
	return nil
}

// Arm opens the reusable badge tab.
func (c *DispatchControllerImpl) Arm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if guard := dispatch.CanArm(dispatch.ArmContext{Enabled: c.enabled}); !guard.Allowed {
		return fmt.Errorf("%s: %w", guard.Reason, primary.ErrAutoDispatchDisabled)
	}

	if err := c.tabs.Arm(ctx); err != nil {
		c.armed = false
		c.saveSession()
		switch {
		case errors.Is(err, secondary.ErrBrowserUnreachable):
			c.notifier.Notify(ctx, notice.BrowserUnreachable("", err))
		case errors.Is(err, secondary.ErrPopupBlocked):
			c.notifier.Notify(ctx, notice.PopupBlocked(""))
		}
		c.logger.Warn("arm failed", zap.Error(err))
		return err
	}

	c.armed = true
	c.saveSession()
	c.notifier.Notify(ctx, notice.Armed())
	return nil
}

// Disarm closes the badge tab if still open.
func (c *DispatchControllerImpl) Disarm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasArmed := c.armed
	c.disarmLocked(ctx)
	if wasArmed {
		c.notifier.Notify(ctx, notice.Disarmed())
	}
	return nil
}

func (c *DispatchControllerImpl) disarmLocked(ctx context.Context) {
	c.tabs.Disarm(ctx)
	c.armed = false
	c.saveSession()
}

// HandleInsert processes one photo-created event and reports what it did.
func (c *DispatchControllerImpl) HandleInsert(ctx context.Context, photo *secondary.PhotoRecord) primary.DispatchOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	feedEventsTotal.Inc()
	outcome := c.handleInsertLocked(ctx, photo)
	dispatchTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (c *DispatchControllerImpl) handleInsertLocked(ctx context.Context, photo *secondary.PhotoRecord) primary.DispatchOutcome {
	state := c.stateLocked()
	if state != dispatch.StateArmed {
		c.notifier.Notify(ctx, notice.Arrival(photo.ID, photo.Name))
		return primary.OutcomeNotified
	}

	_, seen := c.dispatched[photo.ID]
	guard := dispatch.CanAutoDispatch(dispatch.AutoDispatchContext{
		PhotoID:           photo.ID,
		State:             state,
		AlreadyDispatched: seen,
		RateLimited:       c.limiter.TokensAt(c.now()) < 1,
		Processed:         photo.Processed,
	})

	if guard.Code == dispatch.SkipDuplicate {
		c.logger.Debug("duplicate photo event dropped", zap.String("photo", photo.ID))
		return primary.OutcomeDuplicate
	}
	c.notifier.Notify(ctx, notice.Arrival(photo.ID, photo.Name))

	if !guard.Allowed {
		switch guard.Code {
		case dispatch.SkipRateLimited:
			c.logger.Info("auto-dispatch rate limited",
				zap.String("photo", photo.ID),
				zap.Time("last_dispatch", c.lastDispatchAt),
			)
			return primary.OutcomeRateLimited
		case dispatch.SkipProcessed:
			c.logger.Debug("processed photo not dispatched", zap.String("photo", photo.ID))
			return primary.OutcomeProcessed
		}
		return primary.OutcomeNotified
	}

	target, err := c.resolver.Resolve(ctx, photo)
	if err != nil {
		c.logger.Error("build badge url failed", zap.String("photo", photo.ID), zap.Error(err))
		c.notifier.Notify(ctx, notice.DispatchFailed(photo.ID, err))
		return primary.OutcomeDispatchFailed
	}

	if err := c.tabs.Navigate(ctx, target); err != nil {
		if errors.Is(err, secondary.ErrTabClosed) {
			c.armed = false
			c.saveSession()
			if errors.Is(err, secondary.ErrBrowserUnreachable) {
				c.logger.Warn("browser unreachable, disarmed", zap.String("photo", photo.ID), zap.Error(err))
				c.notifier.Notify(ctx, notice.BrowserUnreachable(photo.ID, err))
				return primary.OutcomeTabClosed
			}
			c.logger.Info("badge tab closed, disarmed", zap.String("photo", photo.ID))
			c.notifier.Notify(ctx, notice.TabClosed(photo.ID))
			return primary.OutcomeTabClosed
		}
		c.logger.Error("navigate badge tab failed", zap.String("photo", photo.ID), zap.Error(err))
		c.notifier.Notify(ctx, notice.DispatchFailed(photo.ID, err))
		return primary.OutcomeDispatchFailed
	}

	at := c.now()
	c.limiter.AllowN(at, 1)
	c.lastDispatchAt = at
	c.dispatched[photo.ID] = struct{}{}
	c.saveSession()

	c.logger.Info("auto-dispatched photo",
		zap.String("photo", photo.ID),
		zap.String("target", target),
		zap.String("session", ctxutil.SessionFromContext(ctx)),
	)
	c.notifier.Notify(ctx, notice.Dispatched(photo.ID, true))
	return primary.OutcomeDispatched
}

// DispatchManual opens a photo in a fresh tab. It is exempt from the dedup
// and rate gates and leaves their state untouched.
func (c *DispatchControllerImpl) DispatchManual(ctx context.Context, photoID string) (*primary.ManualDispatchResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	photo, err := c.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %s: %w", photoID, err)
	}

	target, err := c.resolver.Resolve(ctx, photo)
	if err != nil {
		dispatchTotal.WithLabelValues("manual_failed").Inc()
		return nil, fmt.Errorf("failed to build badge url: %w", err)
	}

	h, err := c.tabs.OpenFresh(ctx, target)
	if err != nil {
		dispatchTotal.WithLabelValues("manual_failed").Inc()
		switch {
		case errors.Is(err, secondary.ErrBrowserUnreachable):
			c.notifier.Notify(ctx, notice.BrowserUnreachable(photoID, err))
		case errors.Is(err, secondary.ErrPopupBlocked):
			c.notifier.Notify(ctx, notice.PopupBlocked(photoID))
		default:
			c.notifier.Notify(ctx, notice.DispatchFailed(photoID, err))
		}
		return nil, err
	}

	dispatchTotal.WithLabelValues("manual").Inc()
	c.notifier.Notify(ctx, notice.Dispatched(photoID, false))
	return &primary.ManualDispatchResponse{
		PhotoID:   photoID,
		TargetURL: target,
		TabID:     h.ID,
	}, nil
}

// PreviewTarget returns the badge generator URL for a photo.
func (c *DispatchControllerImpl) PreviewTarget(ctx context.Context, photoID string) (string, error) {
	photo, err := c.photos.GetByID(ctx, photoID)
	if err != nil {
		return "", fmt.Errorf("failed to get photo %s: %w", photoID, err)
	}
	return c.resolver.Resolve(ctx, photo)
}

// Status returns a snapshot of the dispatch state.
func (c *DispatchControllerImpl) Status(ctx context.Context) primary.DispatchStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := primary.DispatchStatus{
		State:           string(c.stateLocked()),
		Enabled:         c.enabled,
		Armed:           c.armed,
		DispatchedCount: len(c.dispatched),
		LastDispatchAt:  c.lastDispatchAt,
		Subscribed:      c.unsubscribe != nil,
	}
	if h, ok := c.tabs.Handle(); ok && c.armed {
		status.TabID = h.ID
	}
	return status
}

func (c *DispatchControllerImpl) stateLocked() dispatch.State {
	if c.armed && !c.tabs.HasHandle() {
		c.armed = false
		c.saveSession()
	}
	return dispatch.ResolveState(c.enabled, c.armed)
}

func (c *DispatchControllerImpl) saveSession() {
	ids := make([]string, 0, len(c.dispatched))
	for id := range c.dispatched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	c.session.SaveSession(secondary.SessionSettings{
		Armed:         c.armed,
		DispatchedIDs: ids,
	})
}

// Ensure DispatchControllerImpl implements the interface.
var _ primary.DispatchController = (*DispatchControllerImpl)(nil)
