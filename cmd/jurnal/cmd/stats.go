package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display submission statistics",
	Long: `Display statistics about journals submitted from this machine.

Shows:
- Number of journals created and updated
- Whether repeat-mode state is waiting for "jurnal submit --continue"
- Last submission timestamp and last exported ledger report
- The five most recent submissions

Example:
  jurnal stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")
	cfg := loadConfig([]string{"storage", "dbPath"})

	conn, history := openHistory(cfg)
	defer conn.Close()

	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	lastExport, err := history.GetMetadata(lastLedgerExportKey)
	exitOnError(err, "failed to get statistics")

	recent, err := history.ListRecent(5)
	exitOnError(err, "failed to get recent submissions")

	fmt.Println("\n=== Submission Statistics ===")
	fmt.Printf("History database:      %s\n", conn.Path())
	fmt.Printf("Journals created:      %d\n", stats.TotalCreated)
	fmt.Printf("Journals updated:      %d\n", stats.TotalUpdated)
	fmt.Printf("Repeat mode pending:   %t\n", stats.PendingContinuation)

	if stats.LastSubmission.Valid {
		fmt.Printf("Last submission:       %s\n", stats.LastSubmission.String)
	} else {
		fmt.Printf("Last submission:       (never)\n")
	}
	if lastExport != "" {
		fmt.Printf("Last ledger report:    %s\n", lastExport)
	}

	if len(recent) > 0 {
		fmt.Println("\n=== Recent Submissions ===")
		for _, r := range recent {
			fmt.Printf("%-6s trans_no=%-6d %-14s %s %s %s\n",
				r.Action, r.TransNo, r.Reference, r.JournalType, r.TransDate, r.Total)
		}
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}
