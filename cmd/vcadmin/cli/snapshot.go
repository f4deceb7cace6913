package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var (
	snapshotName        string
	snapshotDescription string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <name>",
	Short: "Snapshot the first matching VM after confirmation",
	Long: `Create a snapshot of the first VM whose name contains the given
name. Without --name a timestamped default is used. Snapshots never include
guest memory and never quiesce.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts *vmops.SnapshotOptions
		if cmd.Flags().Changed("name") || cmd.Flags().Changed("description") {
			opts = &vmops.SnapshotOptions{
				Name:        snapshotName,
				Description: snapshotDescription,
			}
		}
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.CreateSnapshot(ctx, args[0], opts)
		})
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotName, "name", "", "snapshot name (default: Snapshot-<timestamp>)")
	snapshotCmd.Flags().StringVar(&snapshotDescription, "description", "", "snapshot description")
	rootCmd.AddCommand(snapshotCmd)
}
