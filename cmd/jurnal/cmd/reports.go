package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/report"
)

var (
	reportsFrom string
	reportsTo   string
	reportsShow bool
)

// reportsCmd represents the reports command.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List or print saved ledger reports",
	Long: `List the ledger reports written by "jurnal ledger --out", or print one.

Example:
  jurnal reports
  jurnal reports --show --from 2024-02-01 --to 2024-02-29`,
	Run: runReports,
}

func init() {
	reportsCmd.Flags().StringVar(&reportsFrom, "from", "", "Window start date of the report to print")
	reportsCmd.Flags().StringVar(&reportsTo, "to", "", "Window end date of the report to print")
	reportsCmd.Flags().BoolVar(&reportsShow, "show", false, "Print the report for --from and --to")
}

func runReports(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"storage", "reportDir"})
	repo := report.NewFileSystemRepository(newPathResolver(cfg))

	if reportsShow {
		content, err := repo.ReadLedgerReport(reportsFrom, reportsTo)
		exitOnError(err, "failed to read report")
		if content == "" {
			fmt.Printf("No saved report for %s\n", report.Period(reportsFrom, reportsTo))
			return
		}
		fmt.Print(content)
		return
	}

	names, err := repo.ListReports()
	exitOnError(err, "failed to list reports")
	if len(names) == 0 {
		fmt.Println("No saved reports")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
