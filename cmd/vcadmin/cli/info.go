package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/vsphere"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show vCenter server information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *vsphere.Client, cfg *config.Config) error {
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(c.About())
			}
			printAbout(c.About())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
