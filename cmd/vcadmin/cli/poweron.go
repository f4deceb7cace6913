package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var powerOnCmd = &cobra.Command{
	Use:   "poweron [name]",
	Short: "Power on matching VMs, or every VM when no name is given",
	Long: `Power on every VM whose name contains the given name. Without a
name the inventory is listed and a target is prompted for; leaving that
empty powers on ALL VMs after a confirmation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.PowerOn(ctx, target)
		})
	},
}

func init() {
	rootCmd.AddCommand(powerOnCmd)
}
