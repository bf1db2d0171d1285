// Package terminal renders operator notices on a terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/helena-commits/badge-capture-stream/internal/core/notice"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const bell = "\a"

// Notifier implements secondary.Notifier as one coloured line per notice.
type Notifier struct {
	mu    sync.Mutex
	out   io.Writer
	sound bool
	now   func() time.Time
}

// NewNotifier writes notices to out. When sound is true, notices that ask
// for the audible cue ring the terminal bell.
func NewNotifier(out io.Writer, sound bool) *Notifier {
	return &Notifier{out: out, sound: sound, now: time.Now}
}

// Notify writes the notice. Write errors are dropped.
func (n *Notifier) Notify(ctx context.Context, msg notice.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if msg.Sound && n.sound {
		_, _ = io.WriteString(n.out, bell)
	}
	stamp := color.New(color.FgHiBlack).Sprint(n.now().Format("15:04:05"))
	_, _ = fmt.Fprintf(n.out, "%s %s %s\n", stamp, icon(msg.Level), colorFor(msg.Level).Sprint(msg.Message))
}

func icon(level notice.Level) string {
	switch level {
	case notice.LevelSuccess:
		return color.New(color.FgGreen).Sprint("✓")
	case notice.LevelWarning:
		return color.New(color.FgYellow).Sprint("!")
	case notice.LevelError:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgCyan).Sprint("•")
	}
}

func colorFor(level notice.Level) *color.Color {
	switch level {
	case notice.LevelSuccess:
		return color.New(color.FgGreen)
	case notice.LevelWarning:
		return color.New(color.FgYellow)
	case notice.LevelError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

var _ secondary.Notifier = (*Notifier)(nil)
