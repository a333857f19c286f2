package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/db"
)

// cancelCmd represents the cancel command.
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the state kept by repeat mode",
	Long: `Discard the journal type, branch, date and lines kept by the last
"jurnal submit --repeat". The next submit starts from an empty journal.

Example:
  jurnal cancel`,
	Run: runCancel,
}

func runCancel(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	conn, history := openHistory(cfg)
	defer conn.Close()

	discarded, err := history.DiscardContinuation(db.DefaultSlot)
	exitOnError(err, "failed to discard repeat-mode state")

	if !discarded {
		fmt.Println("Nothing to cancel")
		return
	}

	fmt.Println("Repeat-mode state discarded")
	slog.Info("Discarded draft continuation")
}
