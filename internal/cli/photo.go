package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helena-commits/badge-capture-stream/internal/db"
	"github.com/helena-commits/badge-capture-stream/internal/wire"
)

// PhotoCmd returns the photo command
func PhotoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage captured photos",
		Long: `Record, inspect and hand off captured photos.

A photo's image is either a direct http(s) URL or a path inside the
configured storage bucket, which is signed on demand.`,
	}

	cmd.AddCommand(photoAddCmd())
	cmd.AddCommand(photoListCmd())
	cmd.AddCommand(photoShowCmd())
	cmd.AddCommand(photoSetProcessedCmd("done", true))
	cmd.AddCommand(photoSetProcessedCmd("undone", false))
	cmd.AddCommand(photoOpenCmd())
	cmd.AddCommand(photoURLCmd())
	cmd.AddCommand(photoSeedCmd())

	return cmd
}

func photoAddCmd() *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add <image-ref>",
		Short: "Record a captured photo",
		Long: `Record a captured photo. A running "badgedesk watch" picks it up.

Examples:
  badgedesk photo add captures/2026/ada.jpg --name "Ada Lovelace" --role Speaker
  badgedesk photo add https://images.example.com/grace.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			_, err := wire.PhotoAdapterWithOutput(cmd.OutOrStdout()).Add(ctx, args[0], name, role)
			return err
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name printed on the badge")
	cmd.Flags().StringVarP(&role, "role", "r", "", "role printed on the badge")

	return cmd
}

func photoListCmd() *cobra.Command {
	var all bool
	var search string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List photos (pending only by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			return wire.PhotoAdapterWithOutput(cmd.OutOrStdout()).List(ctx, !all, search, limit)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include processed photos")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or role")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "maximum photos to show (0 = no limit)")

	return cmd
}

func photoShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <photo-id>",
		Short: "Show a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			_, err := wire.PhotoAdapterWithOutput(cmd.OutOrStdout()).Show(ctx, args[0])
			return err
		},
	}
}

func photoSetProcessedCmd(use string, processed bool) *cobra.Command {
	short := "Mark a photo processed"
	if !processed {
		short = "Mark a photo pending again"
	}
	return &cobra.Command{
		Use:   use + " <photo-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			return wire.PhotoAdapterWithOutput(cmd.OutOrStdout()).SetProcessed(ctx, args[0], processed)
		},
	}
}

func photoOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <photo-id>",
		Short: "Open a photo in a fresh badge tab",
		Long: `Open a photo in a new badge generator tab.

Manual opens ignore the auto-dispatch gates: the same photo can be opened
any number of times, back to back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			return wire.DispatchAdapterWithOutput(cmd.OutOrStdout()).Open(ctx, args[0])
		},
	}
}

func photoURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <photo-id>",
		Short: "Print the badge generator URL for a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			return wire.DispatchAdapterWithOutput(cmd.OutOrStdout()).URL(ctx, args[0])
		},
	}
}

func photoSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "seed",
		Short:  "Insert demo photos",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := wire.Database()
			if err != nil {
				return err
			}
			n, err := db.SeedFixtures(database)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Inserted %d demo photos\n", n)
			return nil
		},
	}
}
