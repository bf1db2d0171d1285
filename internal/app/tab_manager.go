package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const blankTabURL = "about:blank"

// TabManager owns at most one reference to the reusable badge tab.
// The handle is a back-reference: the user may close the tab at any time,
// so every use probes liveness first.
type TabManager struct {
	driver secondary.TabDriver
	handle *secondary.TabHandle
	logger *zap.Logger
}

// NewTabManager creates a TabManager with no armed tab.
func NewTabManager(driver secondary.TabDriver, logger *zap.Logger) *TabManager {
	return &TabManager{
		driver: driver,
		logger: logger.Named("tabs"),
	}
}

// Handle returns the managed tab handle, if any.
func (m *TabManager) Handle() (secondary.TabHandle, bool) {
	if m.handle == nil {
		return secondary.TabHandle{}, false
	}
	return *m.handle, true
}

// HasHandle reports whether a tab is currently managed.
func (m *TabManager) HasHandle() bool {
	return m.handle != nil
}

// Arm opens a blank tab and keeps its handle. A still-open armed tab is reused.
// Returns an error wrapping ErrPopupBlocked if the browser refuses.
func (m *TabManager) Arm(ctx context.Context) error {
	if m.handle != nil {
		open, err := m.driver.IsOpen(ctx, *m.handle)
		if err == nil && open {
			return nil
		}
		m.handle = nil
	}

	h, err := m.driver.Open(ctx, blankTabURL)
	if err != nil {
		return fmt.Errorf("failed to arm badge tab: %w", err)
	}
	m.handle = &h
	m.logger.Debug("armed badge tab", zap.String("tab", h.ID))
	return nil
}

// Navigate redirects the armed tab to url and tries to bring it forward.
// Returns an error wrapping ErrTabClosed if there is no live tab, including
// when the browser itself is unreachable; the handle is cleared in that case.
func (m *TabManager) Navigate(ctx context.Context, url string) error {
	if m.handle == nil {
		return fmt.Errorf("no armed badge tab: %w", secondary.ErrTabClosed)
	}
	h := *m.handle

	open, err := m.driver.IsOpen(ctx, h)
	if err != nil {
		if errors.Is(err, secondary.ErrBrowserUnreachable) {
			m.handle = nil
			return fmt.Errorf("badge tab %s: %w: %w", h.ID, secondary.ErrTabClosed, err)
		}
		return fmt.Errorf("failed to probe badge tab: %w", err)
	}
	if !open {
		m.handle = nil
		return fmt.Errorf("badge tab %s: %w", h.ID, secondary.ErrTabClosed)
	}

	if err := m.driver.Navigate(ctx, h, url); err != nil {
		switch {
		case errors.Is(err, secondary.ErrTabClosed):
			m.handle = nil
		case errors.Is(err, secondary.ErrBrowserUnreachable):
			m.handle = nil
			return fmt.Errorf("badge tab %s: %w: %w", h.ID, secondary.ErrTabClosed, err)
		}
		return fmt.Errorf("failed to navigate badge tab: %w", err)
	}

	if err := m.driver.Focus(ctx, h); err != nil {
		m.logger.Debug("focus badge tab failed", zap.String("tab", h.ID), zap.Error(err))
	}
	return nil
}

// OpenFresh opens a new tab directly at url. The managed handle is untouched.
func (m *TabManager) OpenFresh(ctx context.Context, url string) (secondary.TabHandle, error) {
	h, err := m.driver.Open(ctx, url)
	if err != nil {
		return secondary.TabHandle{}, fmt.Errorf("failed to open badge tab: %w", err)
	}
	return h, nil
}

// Disarm closes the managed tab if still open and clears the handle. Idempotent.
func (m *TabManager) Disarm(ctx context.Context) {
	if m.handle == nil {
		return
	}
	h := *m.handle
	m.handle = nil
	if err := m.driver.Close(ctx, h); err != nil {
		m.logger.Warn("close badge tab failed", zap.String("tab", h.ID), zap.Error(err))
	}
}
