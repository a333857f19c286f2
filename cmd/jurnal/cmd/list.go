package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/journal"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
	"github.com/shunichi-ikebuchi/jurnal/pkg/report"
)

var (
	listPeriod string
	listFrom   string
	listTo     string
	listSearch string
	listPage   int
	listDesc   bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journals",
	Long: `List journals sorted by transaction number, 10 per page.

Periods: all, today, month (this month), year (this year) and range
(--from and --to, both inclusive). --page 0 prints every matching journal.

Example:
  jurnal list --period month
  jurnal list --period range --from 2024-01-01 --to 2024-03-31 --desc
  jurnal list --search JU- --page 2`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&listPeriod, "period", "all", "Date preset: all, today, month, year, range")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Range start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Range end date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by reference or journal type")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (0 for all)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort by transaction number descending")
}

func runList(cmd *cobra.Command, args []string) {
	period, err := journal.ParsePeriod(listPeriod)
	exitOnError(err, "invalid flags")

	query := journal.TableQuery{
		Period: period,
		Search: listSearch,
		Desc:   listDesc,
		Page:   listPage,
	}
	if period == journal.PeriodRange {
		from, okFrom := posting.ParseDate(listFrom, time.Local)
		to, okTo := posting.ParseDate(listTo, time.Local)
		if !okFrom || !okTo {
			exitOnError(errors.New("--period range needs --from and --to as YYYY-MM-DD"), "invalid flags")
		}
		query.From, query.To = from, to
	}

	cfg := loadConfig([]string{"api", "url"})
	client := newClient(cfg)

	rows, err := client.ListJournals(cmd.Context())
	exitOnError(err, "failed to list journals")
	slog.Debug("Fetched journals", "count", len(rows))

	page := journal.QueryTable(rows, query, time.Now(), time.Local)
	if page.TotalRows == 0 {
		fmt.Println("No journals found")
		return
	}

	fmt.Print(report.NewFormatter().FormatJournalRows(page.Rows))
	if page.Page > 0 {
		first := (page.Page-1)*journal.PageSize + 1
		last := first + len(page.Rows) - 1
		if len(page.Rows) == 0 {
			first, last = 0, 0
		}
		fmt.Printf("\nShowing %d - %d of %d (page %d/%d)\n", first, last, page.TotalRows, page.Page, page.TotalPages)
	} else {
		fmt.Printf("\nShowing all %d journals\n", page.TotalRows)
	}
}
