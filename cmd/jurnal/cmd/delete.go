package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/events"
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete TRANS_NO",
	Short: "Delete a journal by transaction number",
	Long: `Delete a journal. Deletion is keyed by the transaction number shown in
the "No" column of "jurnal list", not by the journal id.

Example:
  jurnal delete 1042`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	transNo, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || transNo <= 0 {
		exitOnError(fmt.Errorf("invalid transaction number %q", args[0]), "invalid arguments")
	}

	cfg := loadConfig([]string{"api", "url"})
	client := newClient(cfg)
	conn, history := openHistory(cfg)
	defer conn.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	if err := client.DeleteTransaction(ctx, transNo); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Journal %d not found or already deleted\n", transNo)
			os.Exit(1)
		}
		exitOnError(err, "failed to delete journal")
	}

	if _, err := history.MarkDeleted(transNo); err != nil {
		slog.Error("Failed to update submission history", "trans_no", transNo, "error", err)
	}

	publish(ctx, publisher, events.JournalEvent{
		Type:       events.TypeJournalDeleted,
		TransNo:    transNo,
		OccurredAt: time.Now(),
	})

	fmt.Printf("Journal %d deleted\n", transNo)
	slog.Info("Journal deleted", "trans_no", transNo)
}
