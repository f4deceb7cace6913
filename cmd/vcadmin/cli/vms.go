package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/vsphere"
)

var vmsCmd = &cobra.Command{
	Use:   "vms [filter]",
	Short: "List VMs with power state, hardware, and IP",
	Long:  `Show every VM in the inventory, or only those whose names contain the filter (case-insensitive).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  listVMs,
}

func init() {
	rootCmd.AddCommand(vmsCmd)
}

func listVMs(cmd *cobra.Command, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	return withClient(func(ctx context.Context, c *vsphere.Client, cfg *config.Config) error {
		vms, err := c.ListVMs(ctx, filter)
		if err != nil {
			return err
		}
		if jsonOut {
			return json.NewEncoder(os.Stdout).Encode(vms)
		}
		printVMTable(os.Stdout, vms, filter)
		return nil
	})
}
