package secondary

import "context"

// DeviceSettings survive a reload.
type DeviceSettings struct {
	AutoDispatchEnabled bool
}

// SessionSettings live only as long as the operator session.
type SessionSettings struct {
	Armed         bool
	DispatchedIDs []string
}

// DeviceSettingsStore defines the secondary port for device-scoped settings.
type DeviceSettingsStore interface {
	LoadDevice(ctx context.Context) (DeviceSettings, error)
	SaveDevice(ctx context.Context, settings DeviceSettings) error
}

// SessionStore defines the secondary port for session-scoped settings.
// Implementations are cleared on reload and never fail.
type SessionStore interface {
	LoadSession() SessionSettings
	SaveSession(settings SessionSettings)
}
