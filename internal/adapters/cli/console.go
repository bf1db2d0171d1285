package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const consoleHelp = `Commands:
  on              enable auto-dispatch
  off             disable auto-dispatch (also disarms)
  arm             open the reusable badge tab
  disarm          close the badge tab
  open <id>       open a photo in a fresh tab
  url <id>        print the badge URL for a photo
  done <id>       mark a photo processed
  undone <id>     mark a photo pending again
  list            list pending photos
  status          show dispatch state
  help            show this help
  quit            stop watching`

// Console reads operator commands line by line during `watch`.
type Console struct {
	photos   *PhotoAdapter
	dispatch *DispatchAdapter
	out      io.Writer
}

// NewConsole creates a Console over the given adapters.
func NewConsole(photos *PhotoAdapter, dispatch *DispatchAdapter, out io.Writer) *Console {
	return &Console{photos: photos, dispatch: dispatch, out: out}
}

// Run executes commands from in until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the operator asked to quit.
// Command errors are printed, not returned.
func (c *Console) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "on":
		err = c.dispatch.SetAutoDispatch(ctx, true)
	case "off":
		err = c.dispatch.SetAutoDispatch(ctx, false)
	case "arm":
		err = c.dispatch.Arm(ctx)
	case "disarm":
		err = c.dispatch.Disarm(ctx)
	case "status":
		c.dispatch.Status(ctx)
	case "list", "ls":
		err = c.photos.List(ctx, true, strings.Join(args, " "), 20)
	case "open", "url", "done", "undone":
		if len(args) != 1 {
			err = fmt.Errorf("usage: %s <photo-id>", cmd)
			break
		}
		err = c.withID(ctx, cmd, args[0])
	default:
		err = fmt.Errorf("unknown command %q (try: help)", cmd)
	}

	if err != nil {
		fmt.Fprintf(c.out, "✗ %v\n", err)
	}
	return false
}

func (c *Console) withID(ctx context.Context, cmd, id string) error {
	switch cmd {
	case "open":
		return c.dispatch.Open(ctx, id)
	case "url":
		return c.dispatch.URL(ctx, id)
	case "done":
		return c.photos.SetProcessed(ctx, id, true)
	default:
		return c.photos.SetProcessed(ctx, id, false)
	}
}
