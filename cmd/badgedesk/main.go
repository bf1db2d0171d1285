package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helena-commits/badge-capture-stream/internal/cli"
	"github.com/helena-commits/badge-capture-stream/internal/version"
	"github.com/helena-commits/badge-capture-stream/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "badgedesk",
		Short:   "badgedesk - hand captured photos to the badge generator",
		Version: version.String(),
		Long: `badgedesk watches for newly captured photos and opens each one in the
badge generator, either on demand or automatically in a reusable browser tab.

The browser must be started with --remote-debugging-port (see devtools.addr).`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Bootstrap,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			wire.Shutdown(context.Background())
		},
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.PhotoCmd())
	rootCmd.AddCommand(cli.AutoDispatchCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
