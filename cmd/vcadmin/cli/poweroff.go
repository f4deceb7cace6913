package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var powerOffCmd = &cobra.Command{
	Use:   "poweroff [name]",
	Short: "Power off matching VMs, or every VM when no name is given",
	Long: `Power off every VM whose name contains the given name. Without a
name the inventory is listed and a target is prompted for; leaving that
empty powers off ALL VMs after a confirmation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.PowerOff(ctx, target)
		})
	},
}

func init() {
	rootCmd.AddCommand(powerOffCmd)
}
