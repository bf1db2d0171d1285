// Package dispatch contains the pure business logic for auto-dispatch decisions.
// Guards are pure functions that evaluate preconditions without side effects.
package dispatch

import "fmt"

// State is the presented state of the auto-dispatch controller.
type State string

const (
	StateDisabled State = "disabled"
	StateDisarmed State = "enabled/disarmed"
	StateArmed    State = "enabled/armed"
)

// SkipCode identifies why an incoming record was not auto-dispatched.
type SkipCode string

const (
	SkipNone        SkipCode = ""
	SkipNotArmed    SkipCode = "not_armed"
	SkipDuplicate   SkipCode = "duplicate"
	SkipRateLimited SkipCode = "rate_limited"
	SkipProcessed   SkipCode = "processed"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Code    SkipCode
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ResolveState maps the two persisted flags onto a controller state.
// Armed without enabled is not a reachable state and presents as disabled.
func ResolveState(enabled, armed bool) State {
	switch {
	case !enabled:
		return StateDisabled
	case armed:
		return StateArmed
	default:
		return StateDisarmed
	}
}

// RehydrateArmed decides whether a restored session may present as armed.
// A session flag alone is not enough; there must be a live tab handle.
func RehydrateArmed(enabled, sessionArmed, handleLive bool) bool {
	return enabled && sessionArmed && handleLive
}

// AutoDispatchContext provides context for the per-event auto-dispatch guard.
type AutoDispatchContext struct {
	PhotoID           string
	State             State
	AlreadyDispatched bool
	RateLimited       bool
	Processed         bool
}

// ArmContext provides context for the arm guard.
type ArmContext struct {
	Enabled bool
}

// CanAutoDispatch evaluates whether an incoming record should be auto-dispatched.
// Rules, in order:
// - Controller must be armed
// - Record must not have been dispatched in this session
// - Minimum interval since the last dispatch must have elapsed
// - Record must not be processed
func CanAutoDispatch(ctx AutoDispatchContext) GuardResult {
	if ctx.State != StateArmed {
		return GuardResult{
			Code:   SkipNotArmed,
			Reason: fmt.Sprintf("auto-dispatch is not armed (current state: %s)", ctx.State),
		}
	}
	if ctx.AlreadyDispatched {
		return GuardResult{
			Code:   SkipDuplicate,
			Reason: fmt.Sprintf("photo %s was already dispatched in this session", ctx.PhotoID),
		}
	}
	if ctx.RateLimited {
		return GuardResult{
			Code:   SkipRateLimited,
			Reason: fmt.Sprintf("photo %s skipped: minimum dispatch interval not elapsed", ctx.PhotoID),
		}
	}
	if ctx.Processed {
		return GuardResult{
			Code:   SkipProcessed,
			Reason: fmt.Sprintf("photo %s is already processed", ctx.PhotoID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanArm evaluates whether the operator may arm a badge tab.
// Rules:
// - Auto-dispatch must be enabled
func CanArm(ctx ArmContext) GuardResult {
	if !ctx.Enabled {
		return GuardResult{
			Code:   SkipNotArmed,
			Reason: "auto-dispatch is off. Enable it first with: badgedesk auto-dispatch on",
		}
	}

	return GuardResult{Allowed: true}
}
