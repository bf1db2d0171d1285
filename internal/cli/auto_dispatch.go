package cli

import (
	"github.com/spf13/cobra"

	"github.com/helena-commits/badge-capture-stream/internal/wire"
)

// AutoDispatchCmd returns the auto-dispatch command
func AutoDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto-dispatch",
		Short: "Toggle automatic hand-off of new photos",
		Long: `Auto-dispatch is a per-device setting that survives restarts.

Turning it on does not arm a badge tab; that happens in "badgedesk watch".
Turning it off always disarms.`,
	}

	cmd.AddCommand(autoDispatchToggleCmd("on", true))
	cmd.AddCommand(autoDispatchToggleCmd("off", false))
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the auto-dispatch state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.DispatchAdapterWithOutput(cmd.OutOrStdout()).Status(NewContext())
			return nil
		},
	})

	return cmd
}

func autoDispatchToggleCmd(use string, enabled bool) *cobra.Command {
	short := "Enable auto-dispatch"
	if !enabled {
		short = "Disable auto-dispatch"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DispatchAdapterWithOutput(cmd.OutOrStdout()).SetAutoDispatch(NewContext(), enabled)
		},
	}
}
