package secondary

import (
	"context"
	"errors"
)

var (
	// ErrPopupBlocked means the browser refused to open a new tab.
	ErrPopupBlocked = errors.New("popup blocked")
	// ErrTabClosed means a previously opened tab no longer exists.
	ErrTabClosed = errors.New("tab closed")
	// ErrBrowserUnreachable means the browser control endpoint refused or
	// dropped the connection; every tab it owned is gone with it.
	ErrBrowserUnreachable = errors.New("browser unreachable")
)

// TabHandle is a back-reference to a browser tab. The user owns the tab and
// may close it at any time; holders must probe before use.
type TabHandle struct {
	ID string
}

// TabDriver defines the secondary port for controlling browser tabs.
type TabDriver interface {
	// Open opens a new tab at url. Returns ErrPopupBlocked if refused, also
	// wrapping ErrBrowserUnreachable when the browser could not be reached.
	Open(ctx context.Context, url string) (TabHandle, error)

	// IsOpen probes whether the tab still exists. Returns an error wrapping
	// ErrBrowserUnreachable when the browser could not be reached.
	IsOpen(ctx context.Context, handle TabHandle) (bool, error)

	// Navigate redirects the tab to url. Returns ErrTabClosed if the tab is gone.
	Navigate(ctx context.Context, handle TabHandle, url string) error

	// Focus brings the tab to the foreground.
	Focus(ctx context.Context, handle TabHandle) error

	// Close closes the tab. Closing a missing tab is not an error.
	Close(ctx context.Context, handle TabHandle) error
}
