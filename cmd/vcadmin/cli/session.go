package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/vsphere"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show current session information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *vsphere.Client, cfg *config.Config) error {
			info, err := c.SessionInfo(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(info)
			}
			printSessionInfo(info, cfg.Host)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
