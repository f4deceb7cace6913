package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent operation outcomes from the journal",
	Long:  `Show what this tool has done: completed operations alongside declined, mismatched, and failed ones. Reads the local journal; no vCenter connection is made.`,
	RunE:  showHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", journal.DefaultLimit, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(config.Dir(), 0o700); err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	store, err := journal.Open(filepath.Join(config.Dir(), "journal.db"))
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No operations recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tTARGET\tOUTCOME\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			formatTimeAgo(e.Timestamp),
			e.Op,
			e.Target,
			e.Outcome,
			e.Detail,
		)
	}
	return w.Flush()
}
