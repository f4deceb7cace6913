package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete the first matching VM from disk",
	Long: `Delete the first VM whose name contains the given name. Deletion
requires typing YES and then retyping the exact VM name; a powered-on VM
must be powered off first, which is offered interactively. There is no flag
to skip the confirmations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.Delete(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
