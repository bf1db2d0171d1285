package dispatch

import "testing"

func TestResolveState(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		armed   bool
		want    State
	}{
		{name: "disabled", enabled: false, armed: false, want: StateDisabled},
		{name: "armed flag without enabled presents as disabled", enabled: false, armed: true, want: StateDisabled},
		{name: "enabled and disarmed", enabled: true, armed: false, want: StateDisarmed},
		{name: "enabled and armed", enabled: true, armed: true, want: StateArmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveState(tt.enabled, tt.armed); got != tt.want {
				t.Errorf("ResolveState(%v, %v) = %q, want %q", tt.enabled, tt.armed, got, tt.want)
			}
		})
	}
}

func TestRehydrateArmed(t *testing.T) {
	tests := []struct {
		name         string
		enabled      bool
		sessionArmed bool
		handleLive   bool
		want         bool
	}{
		{name: "reload with enabled and no handle stays disarmed", enabled: true, sessionArmed: true, handleLive: false, want: false},
		{name: "enabled without session flag", enabled: true, sessionArmed: false, handleLive: true, want: false},
		{name: "disabled never armed", enabled: false, sessionArmed: true, handleLive: true, want: false},
		{name: "live handle keeps armed", enabled: true, sessionArmed: true, handleLive: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RehydrateArmed(tt.enabled, tt.sessionArmed, tt.handleLive); got != tt.want {
				t.Errorf("RehydrateArmed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAutoDispatch(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AutoDispatchContext
		wantAllowed bool
		wantCode    SkipCode
		wantReason  string
	}{
		{
			name:        "armed fresh unprocessed record is dispatched",
			ctx:         AutoDispatchContext{PhotoID: "p1", State: StateArmed},
			wantAllowed: true,
		},
		{
			name:       "disarmed controller does not dispatch",
			ctx:        AutoDispatchContext{PhotoID: "p1", State: StateDisarmed},
			wantCode:   SkipNotArmed,
			wantReason: "auto-dispatch is not armed (current state: enabled/disarmed)",
		},
		{
			name:       "disabled controller does not dispatch",
			ctx:        AutoDispatchContext{PhotoID: "p1", State: StateDisabled},
			wantCode:   SkipNotArmed,
			wantReason: "auto-dispatch is not armed (current state: disabled)",
		},
		{
			name:       "duplicate wins over rate limit",
			ctx:        AutoDispatchContext{PhotoID: "p1", State: StateArmed, AlreadyDispatched: true, RateLimited: true},
			wantCode:   SkipDuplicate,
			wantReason: "photo p1 was already dispatched in this session",
		},
		{
			name:       "rate limited",
			ctx:        AutoDispatchContext{PhotoID: "p2", State: StateArmed, RateLimited: true},
			wantCode:   SkipRateLimited,
			wantReason: "photo p2 skipped: minimum dispatch interval not elapsed",
		},
		{
			name:       "processed record is dropped",
			ctx:        AutoDispatchContext{PhotoID: "p3", State: StateArmed, Processed: true},
			wantCode:   SkipProcessed,
			wantReason: "photo p3 is already processed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAutoDispatch(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanArm(t *testing.T) {
	if r := CanArm(ArmContext{Enabled: true}); !r.Allowed {
		t.Errorf("expected arm allowed when enabled, got %q", r.Reason)
	}
	r := CanArm(ArmContext{Enabled: false})
	if r.Allowed {
		t.Fatal("expected arm rejected when disabled")
	}
	if r.Error() == nil {
		t.Error("expected Error() to be non-nil for rejected guard")
	}
}
