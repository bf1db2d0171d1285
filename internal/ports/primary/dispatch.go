package primary

import (
	"context"
	"errors"
	"time"
)

// ErrAutoDispatchDisabled is returned when arming while auto-dispatch is off.
var ErrAutoDispatchDisabled = errors.New("auto-dispatch disabled")

// DispatchController defines the primary port for the realtime intake and
// auto-dispatch controller.
type DispatchController interface {
	// Start subscribes to the change feed. Events are handled one at a time.
	Start(ctx context.Context) error

	// Close unsubscribes from the change feed and disarms. Idempotent.
	Close(ctx context.Context)

	// SetAutoDispatch toggles auto-dispatch. Turning it off always disarms.
	SetAutoDispatch(ctx context.Context, enabled bool) error

	// Arm opens a reusable badge tab.
	Arm(ctx context.Context) error

	// Disarm closes the badge tab if still open.
	Disarm(ctx context.Context) error

	// DispatchManual opens a photo in a fresh tab, bypassing dedup and rate gates.
	DispatchManual(ctx context.Context, photoID string) (*ManualDispatchResponse, error)

	// PreviewTarget returns the badge generator URL for a photo without opening it.
	PreviewTarget(ctx context.Context, photoID string) (string, error)

	// Status returns a snapshot of the dispatch state.
	Status(ctx context.Context) DispatchStatus
}

// DispatchOutcome describes what happened to one incoming record.
type DispatchOutcome string

const (
	OutcomeDispatched     DispatchOutcome = "dispatched"
	OutcomeNotified       DispatchOutcome = "notified"
	OutcomeDuplicate      DispatchOutcome = "duplicate"
	OutcomeRateLimited    DispatchOutcome = "rate_limited"
	OutcomeProcessed      DispatchOutcome = "processed"
	OutcomeTabClosed      DispatchOutcome = "tab_closed"
	OutcomeDispatchFailed DispatchOutcome = "failed"
)

// ManualDispatchResponse contains the result of a manual dispatch.
type ManualDispatchResponse struct {
	PhotoID   string
	TargetURL string
	TabID     string
}

// DispatchStatus is a point-in-time view of the controller.
type DispatchStatus struct {
	State           string
	Enabled         bool
	Armed           bool
	TabID           string
	DispatchedCount int
	LastDispatchAt  time.Time
	Subscribed      bool
}
