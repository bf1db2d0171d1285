package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
)

// DispatchAdapter translates CLI operations to DispatchController calls.
type DispatchAdapter struct {
	controller primary.DispatchController
	out        io.Writer
}

// NewDispatchAdapter creates a new DispatchAdapter.
func NewDispatchAdapter(controller primary.DispatchController, out io.Writer) *DispatchAdapter {
	return &DispatchAdapter{
		controller: controller,
		out:        out,
	}
}

// SetAutoDispatch toggles the device-wide auto-dispatch setting.
func (a *DispatchAdapter) SetAutoDispatch(ctx context.Context, enabled bool) error {
	if err := a.controller.SetAutoDispatch(ctx, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Fprintln(a.out, "✓ Auto-dispatch enabled")
	} else {
		fmt.Fprintln(a.out, "✓ Auto-dispatch disabled")
	}
	return nil
}

// Arm opens the reusable badge tab.
func (a *DispatchAdapter) Arm(ctx context.Context) error {
	if err := a.controller.Arm(ctx); err != nil {
		return err
	}
	status := a.controller.Status(ctx)
	fmt.Fprintf(a.out, "✓ Armed badge tab %s\n", status.TabID)
	return nil
}

// Disarm releases the badge tab.
func (a *DispatchAdapter) Disarm(ctx context.Context) error {
	if err := a.controller.Disarm(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Disarmed")
	return nil
}

// Open opens a photo in a fresh badge tab.
func (a *DispatchAdapter) Open(ctx context.Context, photoID string) error {
	resp, err := a.controller.DispatchManual(ctx, photoID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Opened photo %s in tab %s\n", resp.PhotoID, resp.TabID)
	fmt.Fprintf(a.out, "  %s\n", resp.TargetURL)
	return nil
}

// URL prints the badge generator URL for a photo.
func (a *DispatchAdapter) URL(ctx context.Context, photoID string) error {
	target, err := a.controller.PreviewTarget(ctx, photoID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, target)
	return nil
}

// Status prints the controller state.
func (a *DispatchAdapter) Status(ctx context.Context) primary.DispatchStatus {
	status := a.controller.Status(ctx)

	fmt.Fprintf(a.out, "State:         %s\n", status.State)
	fmt.Fprintf(a.out, "Auto-dispatch: %s\n", onOff(status.Enabled))
	if status.TabID != "" {
		fmt.Fprintf(a.out, "Badge tab:     %s\n", status.TabID)
	}
	fmt.Fprintf(a.out, "Dispatched:    %d this session\n", status.DispatchedCount)
	if !status.LastDispatchAt.IsZero() {
		fmt.Fprintf(a.out, "Last dispatch: %s\n", status.LastDispatchAt.Format(time.TimeOnly))
	}
	if status.Subscribed {
		fmt.Fprintln(a.out, "Feed:          watching")
	}
	return status
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
