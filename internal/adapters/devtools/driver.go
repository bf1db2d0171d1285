// Package devtools drives browser tabs through the Chrome DevTools
// remote-debugging HTTP endpoint and the page websocket.
package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const (
	defaultTimeout = 10 * time.Second
	pageType       = "page"
)

// Target is one entry from /json/list.
type Target struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// Driver implements secondary.TabDriver against a browser started with
// --remote-debugging-port.
type Driver struct {
	baseURL string
	client  *http.Client
	dialer  *websocket.Dialer
	logger  *zap.Logger
	msgID   atomic.Int64
}

// NewDriver creates a Driver for the DevTools endpoint at addr
// ("127.0.0.1:9222" or a full http URL).
func NewDriver(addr string, logger *zap.Logger) *Driver {
	base := strings.TrimRight(addr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Driver{
		baseURL: base,
		client:  &http.Client{Timeout: defaultTimeout},
		dialer:  &websocket.Dialer{HandshakeTimeout: defaultTimeout},
		logger:  logger.Named("devtools"),
	}
}

// Open opens a new tab at rawURL. Any refusal is reported as ErrPopupBlocked;
// a dead endpoint additionally matches ErrBrowserUnreachable.
func (d *Driver) Open(ctx context.Context, rawURL string) (secondary.TabHandle, error) {
	var t Target
	status, err := d.doJSON(ctx, http.MethodPut, "/json/new?"+url.QueryEscape(rawURL), &t)
	if err != nil {
		return secondary.TabHandle{}, fmt.Errorf("devtools open tab: %w: %w", err, secondary.ErrPopupBlocked)
	}
	if status != http.StatusOK || t.ID == "" {
		return secondary.TabHandle{}, fmt.Errorf("devtools open tab: status %d: %w", status, secondary.ErrPopupBlocked)
	}
	d.logger.Debug("opened tab", zap.String("tab", t.ID), zap.String("url", rawURL))
	return secondary.TabHandle{ID: t.ID}, nil
}

// Targets lists the browser's current targets.
func (d *Driver) Targets(ctx context.Context) ([]Target, error) {
	var targets []Target
	status, err := d.doJSON(ctx, http.MethodGet, "/json/list", &targets)
	if err != nil {
		return nil, fmt.Errorf("devtools list targets: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("devtools list targets: status %d", status)
	}
	return targets, nil
}

func (d *Driver) findPage(ctx context.Context, id string) (*Target, error) {
	targets, err := d.Targets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range targets {
		if targets[i].ID == id && targets[i].Type == pageType {
			return &targets[i], nil
		}
	}
	return nil, nil
}

// IsOpen reports whether the tab is still among the browser's pages.
func (d *Driver) IsOpen(ctx context.Context, handle secondary.TabHandle) (bool, error) {
	t, err := d.findPage(ctx, handle.ID)
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

type cdpRequest struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

type cdpResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Navigate sends Page.navigate to the tab over its debugger websocket.
func (d *Driver) Navigate(ctx context.Context, handle secondary.TabHandle, rawURL string) error {
	t, err := d.findPage(ctx, handle.ID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("devtools navigate %s: %w", handle.ID, secondary.ErrTabClosed)
	}
	if t.WebSocketDebuggerURL == "" {
		return fmt.Errorf("devtools navigate %s: tab is attached to another debugger", handle.ID)
	}

	conn, _, err := d.dialer.DialContext(ctx, t.WebSocketDebuggerURL, nil)
	if err != nil {
		return fmt.Errorf("devtools connect %s: %w", handle.ID, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetReadDeadline(deadline)
	_ = conn.SetWriteDeadline(deadline)

	id := d.msgID.Add(1)
	if err := conn.WriteJSON(cdpRequest{ID: id, Method: "Page.navigate", Params: map[string]any{"url": rawURL}}); err != nil {
		return fmt.Errorf("devtools send Page.navigate: %w", err)
	}

	// Events may arrive before the reply; skip until our id comes back.
	for {
		var resp cdpResponse
		if err := conn.ReadJSON(&resp); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("devtools navigate %s: %w", handle.ID, secondary.ErrTabClosed)
			}
			return fmt.Errorf("devtools read Page.navigate reply: %w", err)
		}
		if resp.ID != id {
			continue
		}
		if resp.Error != nil {
			return fmt.Errorf("devtools Page.navigate: %s (code %d)", resp.Error.Message, resp.Error.Code)
		}
		var result struct {
			ErrorText string `json:"errorText"`
		}
		if len(resp.Result) > 0 {
			_ = json.Unmarshal(resp.Result, &result)
		}
		if result.ErrorText != "" {
			return fmt.Errorf("devtools Page.navigate: %s", result.ErrorText)
		}
		d.logger.Debug("navigated tab", zap.String("tab", handle.ID), zap.String("url", rawURL))
		return nil
	}
}

// Focus brings the tab to the foreground.
func (d *Driver) Focus(ctx context.Context, handle secondary.TabHandle) error {
	status, err := d.doJSON(ctx, http.MethodGet, "/json/activate/"+url.PathEscape(handle.ID), nil)
	if err != nil {
		return fmt.Errorf("devtools activate %s: %w", handle.ID, err)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("devtools activate %s: %w", handle.ID, secondary.ErrTabClosed)
	}
	if status != http.StatusOK {
		return fmt.Errorf("devtools activate %s: status %d", handle.ID, status)
	}
	return nil
}

// Close closes the tab. A tab that is already gone is not an error.
func (d *Driver) Close(ctx context.Context, handle secondary.TabHandle) error {
	status, err := d.doJSON(ctx, http.MethodGet, "/json/close/"+url.PathEscape(handle.ID), nil)
	if err != nil {
		return fmt.Errorf("devtools close %s: %w", handle.ID, err)
	}
	if status != http.StatusOK && status != http.StatusNotFound {
		return fmt.Errorf("devtools close %s: status %d", handle.ID, status)
	}
	return nil
}

// doJSON issues a request and decodes a 200 body into out when out is non-nil.
func (d *Driver) doJSON(ctx context.Context, method, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w at %s: %v", secondary.ErrBrowserUnreachable, d.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("empty response")
		}
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

var _ secondary.TabDriver = (*Driver)(nil)
