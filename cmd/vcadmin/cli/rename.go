package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var renameCmd = &cobra.Command{
	Use:   "rename <name> [new-name]",
	Short: "Rename the first matching VM",
	Long: `Rename the first VM whose name contains the given name. The new
name is prompted for when not given on the command line.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newName := ""
		if len(args) == 2 {
			newName = args[1]
		}
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.Rename(ctx, args[0], newName)
		})
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
