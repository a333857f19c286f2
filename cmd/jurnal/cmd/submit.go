package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/jurnal/pkg/db"
	"github.com/shunichi-ikebuchi/jurnal/pkg/events"
	"github.com/shunichi-ikebuchi/jurnal/pkg/journal"
	"github.com/shunichi-ikebuchi/jurnal/pkg/money"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
	"github.com/shunichi-ikebuchi/jurnal/pkg/report"
)

var (
	journalFile  string
	editID       int64
	repeatMode   bool
	continueLast bool
	submitDryRun bool
)

// submitCmd represents the submit command.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a journal from a YAML file",
	Long: `Submit a balanced journal described in a YAML file.

The journal is validated locally before anything is sent: every header
field is required, there must be at least one debit and one credit line,
amounts must be positive and the debit total must equal the credit total.

With --repeat, the journal type, branch, date and every line's account and
memo are kept after a successful submit. The next submit with --continue
starts from them; lines in the file without an account fill in the amounts
of the kept lines in order. "jurnal cancel" discards the kept state.

Example:
  jurnal submit -f entry.yaml
  jurnal submit -f entry.yaml --repeat
  jurnal submit -f amounts.yaml --continue
  jurnal submit -f entry.yaml --edit 42`,
	Run: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&journalFile, "file", "f", "", "Journal YAML file (required)")
	submitCmd.Flags().Int64Var(&editID, "edit", 0, "Update the journal with this id instead of creating one")
	submitCmd.Flags().BoolVar(&repeatMode, "repeat", false, "Keep type, branch, date and lines for the next journal")
	submitCmd.Flags().BoolVar(&continueLast, "continue", false, "Start from the state kept by the last --repeat submit")
	submitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "Validate and print the journal without sending it")

	submitCmd.MarkFlagRequired("file")
	submitCmd.MarkFlagsMutuallyExclusive("edit", "continue")
}

func runSubmit(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := loadConfig([]string{"api", "url"})

	client := newClient(cfg)
	conn, history := openHistory(cfg)
	defer conn.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	tmpl, err := journal.LoadTemplate(journalFile)
	exitOnError(err, "failed to load journal")

	chart := loadChart(ctx, client)
	slog.Debug("Loaded chart of accounts", "accounts", chart.Len())

	opts := []journal.Option{
		journal.WithLogger(slog.Default()),
		journal.WithRepeatMode(repeatMode),
	}

	var b *journal.Builder
	switch {
	case editID != 0:
		detail, err := client.GetJournalDetail(ctx, editID)
		exitOnError(err, "failed to load journal for editing")
		b, err = journal.FromDetail(editID, detail, chart, opts...)
		exitOnError(err, "failed to load journal for editing")
		// The file replaces the existing lines.
		for _, l := range b.Debits() {
			b.RemoveLine(posting.Debit, l.ID)
		}
		for _, l := range b.Credits() {
			b.RemoveLine(posting.Credit, l.ID)
		}

	case continueLast:
		b, err = restoreBuilder(history, repeatMode, opts...)
		exitOnError(err, "cannot continue")

	default:
		b = journal.New(opts...)
	}

	exitOnError(tmpl.Apply(b, chart), "invalid journal")

	header := b.Header()
	formatter := report.NewFormatter()

	if submitDryRun {
		if err := b.Validate(header); err != nil {
			exitOnError(err, "journal is not ready")
		}
		fmt.Printf("[DRY RUN] Would %s:\n", submitAction(b))
		fmt.Print(formatter.FormatPayload(b.Payload(header)))
		return
	}

	result, err := submitJournal(ctx, b, header, client, history, continueLast)
	if result == nil {
		outcome := journal.Classify(err)
		slog.Error("Journal submission failed", "outcome", outcome.Message(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", outcome.Message(), err)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Journal submitted but local history was not updated", "error", err)
	}

	action := submittedAction(result)
	var journalID, transNo int64
	if result.Transaction != nil {
		journalID, transNo = result.Transaction.ID, result.Transaction.TransNo
	}

	publish(ctx, publisher, events.JournalEvent{
		Type:       events.TypeJournalSubmitted,
		JournalID:  journalID,
		TransNo:    transNo,
		Reference:  result.Payload.NoRef,
		Kodej:      result.Payload.Kodej,
		Proyek:     result.Payload.Proyek,
		TransDate:  result.Payload.TransDate,
		Total:      result.Total.String(),
		Updated:    result.Updated,
		OccurredAt: time.Now(),
	})

	if result.Continuation != nil {
		slog.Info("Kept journal for repeat mode",
			"debits", len(result.Continuation.Debits),
			"credits", len(result.Continuation.Credits),
		)
	}

	fmt.Print(formatter.FormatPayload(result.Payload))
	fmt.Printf("\n%s: trans_no=%d id=%d total=%s\n",
		journal.OutcomeOK.Message(), transNo, journalID, money.Format(result.Total))
	if result.Continuation != nil {
		fmt.Println("Repeat mode: run \"jurnal submit --continue\" for the next journal")
	}

	slog.Info("Journal submitted",
		"action", action,
		"trans_no", transNo,
		"reference", result.Payload.NoRef,
	)
}

func submitAction(b *journal.Builder) string {
	if b.IsEditMode() {
		return fmt.Sprintf("update journal %d", b.EditID())
	}
	return "create journal"
}

var errNothingToContinue = errors.New("nothing kept by a previous --repeat submit")

// restoreBuilder starts a builder from the state kept by the last --repeat
// submit. The kept state stays stored until a submit succeeds.
func restoreBuilder(history *db.History, repeat bool, opts ...journal.Option) (*journal.Builder, error) {
	data, err := history.LoadContinuation(db.DefaultSlot)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errNothingToContinue
	}

	c, err := journal.UnmarshalContinuation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repeat-mode state: %w", err)
	}

	b := journal.New(append(opts, journal.WithContinuation(c))...)
	if !repeat {
		b.SetRepeatMode(false)
	}
	return b, nil
}

// submitJournal sends the journal and records it locally. A nil result means
// the server never accepted it and nothing local changed. A non-nil result
// with an error means the journal was accepted but the history update failed.
//
// On success the kept continuation is replaced by the new one in repeat mode,
// or cleared when continued is set and repeat mode is off.
func submitJournal(ctx context.Context, b *journal.Builder, header journal.Header, s journal.Submitter, history *db.History, continued bool) (*journal.Result, error) {
	result, err := b.Submit(ctx, header, s)
	if err != nil {
		return nil, err
	}

	change := db.ContinuationChange{Slot: db.DefaultSlot, Clear: continued}
	if result.Continuation != nil {
		data, err := result.Continuation.Marshal()
		if err != nil {
			return result, fmt.Errorf("failed to encode repeat-mode state: %w", err)
		}
		change.Payload = data
	}

	var journalID, transNo int64
	if result.Transaction != nil {
		journalID, transNo = result.Transaction.ID, result.Transaction.TransNo
	}

	err = history.RecordSubmission(ctx, db.SubmissionRecord{
		Action:      submittedAction(result),
		JournalID:   journalID,
		TransNo:     transNo,
		Reference:   result.Payload.NoRef,
		JournalType: result.Payload.Kodej,
		Branch:      result.Payload.Proyek,
		TransDate:   result.Payload.TransDate,
		Total:       result.Total.String(),
		LineCount:   len(result.Payload.DebitAccounts) + len(result.Payload.CreditAccounts),
	}, change)
	return result, err
}

func submittedAction(result *journal.Result) db.Action {
	if result.Updated {
		return db.ActionUpdate
	}
	return db.ActionCreate
}
