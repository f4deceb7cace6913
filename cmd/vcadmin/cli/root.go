// Package cli implements the vcadmin command-line interface using Cobra.
// It provides the interactive console plus one-shot commands for inventory,
// gated VM operations, and the operation journal.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/log"
)

var (
	verbose bool
	dryRun  bool
	jsonOut bool
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "vcadmin",
	Short: "vcadmin - Interactive vCenter VM administration",
	Long: `vcadmin administers the virtual machines of a VMware vCenter.

Every mutating operation walks a confirmation dialogue before anything is
invoked, and deletion additionally requires retyping the exact VM name.
Outcomes are recorded to a local journal for the history command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config just for the debug settings; command handlers load
		// and validate their own copy.
		cfg, err := config.Load(cfgPath)
		if err != nil {
			cfg = config.Default()
		}
		debugDir := filepath.Join(config.Dir(), "debug")

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			Interactive:   cmd.Name() == "console",
			DebugDir:      debugDir,
			RetentionDays: cfg.Debug.RetentionDays,
		}); err != nil {
			// Init failure falls back to the default logger.
			cmd.PrintErrf("Warning: debug logging disabled: %v\n", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print what would happen without invoking anything")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ~/.vcadmin/config.yaml)")
}
