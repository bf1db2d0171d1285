package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func findSub(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// TestCommandStructure verifies every subcommand is registered with metadata.
func TestCommandStructure(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		subs   []string
	}{
		{parent: PhotoCmd(), subs: []string{"add", "list", "show", "done", "undone", "open", "url", "seed"}},
		{parent: AutoDispatchCmd(), subs: []string{"on", "off", "status"}},
		{parent: ConfigCmd(), subs: []string{"init", "show"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent.Name(), func(t *testing.T) {
			for _, name := range tt.subs {
				sub := findSub(tt.parent, name)
				if sub == nil {
					t.Errorf("%s subcommand not registered under %s", name, tt.parent.Name())
					continue
				}
				if sub.Short == "" {
					t.Errorf("%s %s should have a Short description", tt.parent.Name(), name)
				}
			}
		})
	}
}

func TestWatchCmdFlags(t *testing.T) {
	cmd := WatchCmd()
	for _, flag := range []string{"enable", "arm", "metrics-addr"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("watch should have --%s", flag)
		}
	}
}

func TestPhotoAddRequiresImageRef(t *testing.T) {
	add := findSub(PhotoCmd(), "add")
	if err := add.Args(add, []string{}); err == nil {
		t.Error("expected photo add to require an image reference")
	}
	if err := add.Args(add, []string{"captures/a.jpg"}); err != nil {
		t.Errorf("unexpected args error: %v", err)
	}
}

func TestAddGlobalFlags(t *testing.T) {
	root := &cobra.Command{Use: "badgedesk"}
	AddGlobalFlags(root)

	for _, flag := range []string{"config", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s", flag)
		}
	}
}
