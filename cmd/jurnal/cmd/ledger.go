package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/ledger"
	"github.com/shunichi-ikebuchi/jurnal/pkg/report"
)

const lastLedgerExportKey = "last_ledger_export"

var (
	ledgerFrom string
	ledgerTo   string
	ledgerCode string
	ledgerName string
	ledgerOut  bool
)

// ledgerCmd represents the ledger command.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the general ledger",
	Long: `Print the general ledger (buku besar) for a date window.

Each account shows its opening balance (every posting before --from), the
postings inside the window with a running balance, and totals. Accounts
with no postings in the window are listed only if their opening balance is
not zero. --code and --name narrow the accounts shown without changing any
balance.

Example:
  jurnal ledger
  jurnal ledger --from 2024-02-01 --to 2024-02-29
  jurnal ledger --from 2024-02-01 --code 11 --out`,
	Run: runLedger,
}

func init() {
	ledgerCmd.Flags().StringVar(&ledgerFrom, "from", "", "Window start date (YYYY-MM-DD)")
	ledgerCmd.Flags().StringVar(&ledgerTo, "to", "", "Window end date (YYYY-MM-DD), inclusive")
	ledgerCmd.Flags().StringVar(&ledgerCode, "code", "", "Show accounts whose code contains this text")
	ledgerCmd.Flags().StringVar(&ledgerName, "name", "", "Show accounts whose name contains this text")
	ledgerCmd.Flags().BoolVar(&ledgerOut, "out", false, "Also write the report to the report directory")
}

func runLedger(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"api", "url"})
	client := newClient(cfg)

	agg := ledger.NewAggregator(
		ledger.WithLocation(time.Local),
		ledger.WithLogger(slog.Default()),
	)
	session := ledger.NewSession(agg, client)

	slog.Info("Fetching general ledger")
	exitOnError(session.Refresh(cmd.Context()), "failed to fetch general ledger")

	filter := ledger.Filter{AccountCode: ledgerCode, AccountName: ledgerName}
	accounts := session.ReportDates(filter, ledgerFrom, ledgerTo)
	slog.Info("Computed general ledger", "accounts", len(accounts))

	window := agg.ParseWindow(ledgerFrom, ledgerTo)
	from, to := "", ""
	if window.HasStart() {
		from = window.Start.Format("2006-01-02")
	}
	if window.HasEnd() {
		to = window.End.Format("2006-01-02")
	}

	content := report.NewFormatter().FormatLedger(accounts, report.Period(from, to))
	fmt.Print(content)

	if !ledgerOut {
		return
	}

	repo := report.NewFileSystemRepository(newPathResolver(cfg))
	path, err := repo.WriteLedgerReport(from, to, content)
	exitOnError(err, "failed to write report")

	conn, history := openHistory(cfg)
	defer conn.Close()
	if err := history.SetMetadata(lastLedgerExportKey, path); err != nil {
		slog.Warn("Failed to record report export", "error", err)
	}

	fmt.Printf("\nReport written to %s\n", path)
	slog.Info("Report written", "path", path)
}
