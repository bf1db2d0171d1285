package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
)

func newTestDispatchAdapter() (*DispatchAdapter, *mockDispatchController, *bytes.Buffer) {
	mock := &mockDispatchController{}
	var buf bytes.Buffer
	return NewDispatchAdapter(mock, &buf), mock, &buf
}

func TestDispatchAdapter_SetAutoDispatch(t *testing.T) {
	adapter, mock, buf := newTestDispatchAdapter()
	ctx := context.Background()

	_ = adapter.SetAutoDispatch(ctx, true)
	_ = adapter.SetAutoDispatch(ctx, false)

	if len(mock.enabled) != 2 || !mock.enabled[0] || mock.enabled[1] {
		t.Errorf("unexpected toggles %v", mock.enabled)
	}
	if !strings.Contains(buf.String(), "enabled") || !strings.Contains(buf.String(), "disabled") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDispatchAdapter_ArmError(t *testing.T) {
	adapter, mock, buf := newTestDispatchAdapter()
	mock.armFn = func(ctx context.Context) error { return primary.ErrAutoDispatchDisabled }

	err := adapter.Arm(context.Background())
	if !errors.Is(err, primary.ErrAutoDispatchDisabled) {
		t.Fatalf("expected ErrAutoDispatchDisabled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDispatchAdapter_Arm(t *testing.T) {
	adapter, _, buf := newTestDispatchAdapter()

	if err := adapter.Arm(context.Background()); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Armed badge tab T1") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDispatchAdapter_Open(t *testing.T) {
	adapter, _, buf := newTestDispatchAdapter()

	if err := adapter.Open(context.Background(), "p-001"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Opened photo p-001 in tab T9") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDispatchAdapter_URL(t *testing.T) {
	adapter, _, buf := newTestDispatchAdapter()

	if err := adapter.URL(context.Background(), "p-001"); err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if buf.String() != "https://badges.example.com/?photo=p-001\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDispatchAdapter_Status(t *testing.T) {
	adapter, mock, buf := newTestDispatchAdapter()
	mock.status = primary.DispatchStatus{
		State:           "enabled/armed",
		Enabled:         true,
		Armed:           true,
		TabID:           "T1",
		DispatchedCount: 3,
		LastDispatchAt:  fixedTime,
		Subscribed:      true,
	}

	adapter.Status(context.Background())

	out := buf.String()
	for _, want := range []string{"enabled/armed", "Auto-dispatch: on", "Badge tab:     T1", "3 this session", "09:15:00", "watching"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
