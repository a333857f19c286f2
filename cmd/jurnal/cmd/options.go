package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// optionsCmd represents the options command.
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List journal types, branches and the chart of accounts",
	Long: `List the reference data a journal refers to: journal types (kodej),
branches (proyek) and the chart of accounts.

Example:
  jurnal options`,
	Run: runOptions,
}

func runOptions(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"api", "url"})
	client := newClient(cfg)

	ref, err := client.FetchReferenceData(cmd.Context())
	exitOnError(err, "failed to load reference data")

	fmt.Println("\n=== Journal Types ===")
	for _, t := range ref.JournalTypes {
		fmt.Printf("%-8s %s\n", t.Kode, t.Nama)
	}

	fmt.Println("\n=== Branches ===")
	for _, b := range ref.Branches {
		fmt.Printf("%-8s %s\n", b.DepCode, b.DepName)
	}

	fmt.Println("\n=== Chart of Accounts ===")
	for _, a := range ref.Chart {
		fmt.Println(posting.Account{Code: a.AccountCode, Name: a.AccountName}.Label())
	}
	fmt.Println()

	slog.Debug("Reference data displayed",
		"journal_types", len(ref.JournalTypes),
		"branches", len(ref.Branches),
		"accounts", len(ref.Chart),
	)
}
