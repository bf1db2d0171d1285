// Package notice defines operator notices as data.
// A notice describes what the operator should be told, not how it is shown.
package notice

import "fmt"

// Kind identifies the notice type.
type Kind string

const (
	KindArrival        Kind = "arrival"
	KindDispatched     Kind = "dispatched"
	KindPopupBlocked   Kind = "popup_blocked"
	KindUnreachable    Kind = "browser_unreachable"
	KindTabClosed      Kind = "tab_closed"
	KindDispatchFailed Kind = "dispatch_failed"
	KindArmed          Kind = "armed"
	KindDisarmed       Kind = "disarmed"
	KindAutoDispatch   Kind = "auto_dispatch"
)

// Level is the visual severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a fire-and-forget message for the operator.
type Notice struct {
	Kind    Kind
	Level   Level
	Message string
	PhotoID string
	Sound   bool // play the audible cue
}

// Arrival announces a newly created photo record.
func Arrival(photoID, name string) Notice {
	msg := fmt.Sprintf("New photo %s", photoID)
	if name != "" {
		msg = fmt.Sprintf("New photo from %s (%s)", name, photoID)
	}
	return Notice{Kind: KindArrival, Level: LevelInfo, Message: msg, PhotoID: photoID, Sound: true}
}

// Dispatched confirms a photo was sent to the badge generator.
func Dispatched(photoID string, auto bool) Notice {
	mode := "Opened"
	if auto {
		mode = "Auto-dispatched"
	}
	return Notice{
		Kind:    KindDispatched,
		Level:   LevelSuccess,
		Message: fmt.Sprintf("%s photo %s in badge generator", mode, photoID),
		PhotoID: photoID,
	}
}

// PopupBlocked tells the operator the browser refused to open a tab.
func PopupBlocked(photoID string) Notice {
	msg := "Browser refused to open a tab. Allow pop-ups for the badge generator and try again"
	if photoID != "" {
		msg = fmt.Sprintf("Browser refused to open a tab for photo %s. Allow pop-ups and retry with: open %s", photoID, photoID)
	}
	return Notice{Kind: KindPopupBlocked, Level: LevelError, Message: msg, PhotoID: photoID}
}

// BrowserUnreachable tells the operator the browser control endpoint is not
// answering. err carries the address that was tried.
func BrowserUnreachable(photoID string, err error) Notice {
	msg := fmt.Sprintf("Cannot reach the browser (%v). Start it with --remote-debugging-port or fix devtools.addr, then retry with: arm", err)
	if photoID != "" {
		msg = fmt.Sprintf("Cannot reach the browser for photo %s (%v). Start it with --remote-debugging-port or fix devtools.addr, then retry with: open %s", photoID, err, photoID)
	}
	return Notice{Kind: KindUnreachable, Level: LevelError, Message: msg, PhotoID: photoID}
}

// TabClosed reports that the armed tab disappeared and auto-dispatch disarmed.
func TabClosed(photoID string) Notice {
	return Notice{
		Kind:    KindTabClosed,
		Level:   LevelWarning,
		Message: fmt.Sprintf("Badge tab was closed; auto-dispatch disarmed. Photo %s was not opened. Re-arm with: arm", photoID),
		PhotoID: photoID,
		Sound:   true,
	}
}

// DispatchFailed reports a dispatch that failed for any other reason.
func DispatchFailed(photoID string, err error) Notice {
	return Notice{
		Kind:    KindDispatchFailed,
		Level:   LevelError,
		Message: fmt.Sprintf("Could not dispatch photo %s: %v", photoID, err),
		PhotoID: photoID,
	}
}

// Armed confirms a badge tab is ready to receive photos.
func Armed() Notice {
	return Notice{Kind: KindArmed, Level: LevelSuccess, Message: "Badge tab armed; new photos will open automatically"}
}

// Disarmed confirms the badge tab was released.
func Disarmed() Notice {
	return Notice{Kind: KindDisarmed, Level: LevelInfo, Message: "Badge tab disarmed"}
}

// AutoDispatch confirms the auto-dispatch toggle.
func AutoDispatch(enabled bool) Notice {
	if enabled {
		return Notice{Kind: KindAutoDispatch, Level: LevelInfo, Message: "Auto-dispatch on. Arm a badge tab with: arm"}
	}
	return Notice{Kind: KindAutoDispatch, Level: LevelInfo, Message: "Auto-dispatch off"}
}
