package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const keyAutoDispatchEnabled = "auto_dispatch_enabled"

// SettingsRepository implements secondary.DeviceSettingsStore on the
// settings key/value table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite settings repository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for key, and false if it was never set.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a setting.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// LoadDevice reads the device settings. Auto-dispatch defaults to off.
func (r *SettingsRepository) LoadDevice(ctx context.Context) (secondary.DeviceSettings, error) {
	raw, ok, err := r.Get(ctx, keyAutoDispatchEnabled)
	if err != nil {
		return secondary.DeviceSettings{}, err
	}
	if !ok {
		return secondary.DeviceSettings{}, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		// Unreadable values fall back to the default.
		return secondary.DeviceSettings{}, nil
	}
	return secondary.DeviceSettings{AutoDispatchEnabled: enabled}, nil
}

// SaveDevice persists the device settings.
func (r *SettingsRepository) SaveDevice(ctx context.Context, settings secondary.DeviceSettings) error {
	return r.Set(ctx, keyAutoDispatchEnabled, strconv.FormatBool(settings.AutoDispatchEnabled))
}

var _ secondary.DeviceSettingsStore = (*SettingsRepository)(nil)
