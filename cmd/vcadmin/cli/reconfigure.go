package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/vmops"
)

var (
	reconfigureCPU      int
	reconfigureMemoryGB int
)

var reconfigureCmd = &cobra.Command{
	Use:   "reconfigure <name>",
	Short: "Change CPU count and/or memory of the first matching VM",
	Long: `Reconfigure the hardware of the first VM whose name contains the
given name. The VM must already be powered off. Without flags the new
values are prompted for.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts *vmops.ReconfigureOptions
		if cmd.Flags().Changed("cpu") || cmd.Flags().Changed("memory-gb") {
			opts = &vmops.ReconfigureOptions{
				NumCPU:   reconfigureCPU,
				MemoryGB: reconfigureMemoryGB,
			}
		}
		return withActions(func(ctx context.Context, a *vmops.Actions) error {
			return a.Reconfigure(ctx, args[0], opts)
		})
	},
}

func init() {
	reconfigureCmd.Flags().IntVar(&reconfigureCPU, "cpu", 0, "new CPU count")
	reconfigureCmd.Flags().IntVar(&reconfigureMemoryGB, "memory-gb", 0, "new memory in GB")
	rootCmd.AddCommand(reconfigureCmd)
}
