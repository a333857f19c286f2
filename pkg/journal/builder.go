// Package journal builds double-entry journal entries: it collects debit and
// credit lines for one header, enforces the balance identity and submits the
// entry to the API.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/money"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// Header is the transaction-level part of a journal.
type Header struct {
	JournalType string // kodej
	Branch      string // proyek
	Date        time.Time
	Reference   string // no_ref
}

// IsZero reports whether no header field is set.
func (h Header) IsZero() bool {
	return h.JournalType == "" && h.Branch == "" && h.Date.IsZero() && h.Reference == ""
}

// Line is one debit or credit line of the draft.
type Line struct {
	ID        string
	Account   posting.Account
	Memo      string
	Magnitude decimal.Decimal
}

// Input is the line entry buffer: the account selector, memo and amount
// fields of the form.
type Input struct {
	Side    posting.Side
	Account *posting.Account
	Memo    string
	Amount  string
}

// Submitter persists journals. *backend.Client implements it.
type Submitter interface {
	CreateTransaction(ctx context.Context, payload backend.TransactionPayload) (*backend.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, payload backend.TransactionPayload) (*backend.Transaction, error)
}

// Result describes a successful submission.
type Result struct {
	Transaction *backend.Transaction
	Payload     backend.TransactionPayload
	Updated     bool
	Total       decimal.Decimal

	// Continuation is set in repeat mode. Hand it to the next builder with
	// WithContinuation to restore the retained fields.
	Continuation *DraftContinuation
}

// Builder holds the draft of a single journal. It is owned by one form and
// is not safe for concurrent use.
type Builder struct {
	header    Header
	debits    []Line
	credits   []Line
	input     Input
	editingID string

	repeat bool
	editID int64 // row id of the journal being edited, 0 when creating

	phase   phase
	lastErr error

	newID  func() string
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithIDGenerator replaces the line id generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

// WithRepeatMode enables repeat mode from the start.
func WithRepeatMode(enabled bool) Option {
	return func(b *Builder) {
		b.repeat = enabled
	}
}

// WithContinuation restores the state retained by a repeat-mode submission.
func WithContinuation(c *DraftContinuation) Option {
	return func(b *Builder) {
		if c != nil {
			b.restore(c)
		}
	}
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		newID:  uuid.NewString,
		logger: slog.Default(),
		input:  Input{Side: posting.Debit},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Header returns the current header.
func (b *Builder) Header() Header {
	return b.header
}

// SetHeader replaces the header fields.
func (b *Builder) SetHeader(h Header) {
	b.header = h
	b.touch()
}

// Input returns the line entry buffer.
func (b *Builder) Input() Input {
	return b.input
}

// SetInput replaces the line entry buffer.
func (b *Builder) SetInput(in Input) {
	b.input = in
}

// RepeatMode reports whether repeat mode is on.
func (b *Builder) RepeatMode() bool {
	return b.repeat
}

// SetRepeatMode turns repeat mode on or off.
func (b *Builder) SetRepeatMode(enabled bool) {
	b.repeat = enabled
}

// EditID returns the row id of the journal being edited, or 0.
func (b *Builder) EditID() int64 {
	return b.editID
}

// IsEditMode reports whether Submit will update an existing journal.
func (b *Builder) IsEditMode() bool {
	return b.editID != 0
}

// EditingID returns the id of the line loaded by BeginEdit, or "".
func (b *Builder) EditingID() string {
	return b.editingID
}

// Add commits the input buffer with AddOrUpdateLine.
func (b *Builder) Add() (Line, error) {
	return b.AddOrUpdateLine(b.input.Side, b.input.Account, b.input.Memo, b.input.Amount)
}

// AddOrUpdateLine adds a line to the side bucket, or replaces the line being
// edited in place. The amount is locale text ("1.500.000,50").
//
// On any error the line set and the input buffer are left untouched. On
// success the input buffer is cleared.
func (b *Builder) AddOrUpdateLine(side posting.Side, account *posting.Account, memo, amount string) (Line, error) {
	if !side.Valid() {
		return Line{}, &ValidationError{Err: ErrInvalidSide}
	}

	var missing []string
	if account == nil || strings.TrimSpace(account.Code) == "" {
		missing = append(missing, "account")
	}
	if strings.TrimSpace(amount) == "" {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return Line{}, &ValidationError{Err: ErrMissingField, Fields: missing}
	}

	magnitude, err := money.ParseAmount(amount)
	if err != nil {
		return Line{}, &ValidationError{Err: err, Fields: []string{"amount"}}
	}
	if !magnitude.IsPositive() {
		return Line{}, &ValidationError{Err: ErrNonPositiveAmount, Fields: []string{"amount"}}
	}

	line := Line{
		Account:   *account,
		Memo:      memo,
		Magnitude: magnitude,
	}

	if b.editingID != "" {
		line.ID = b.editingID
		if !b.replace(side, line) {
			return Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, b.editingID)
		}
		b.logger.Debug("Updated journal line", "side", side, "id", line.ID, "account", line.Account.Code)
	} else {
		line.ID = b.newID()
		b.bucket(side).append(line)
		b.logger.Debug("Added journal line", "side", side, "id", line.ID, "account", line.Account.Code)
	}

	b.clearInput()
	b.touch()

	return line, nil
}

// BeginEdit loads the line with id into the input buffer. The next
// AddOrUpdateLine replaces it.
func (b *Builder) BeginEdit(side posting.Side, id string) error {
	lines := b.bucket(side)
	if lines == nil {
		return &ValidationError{Err: ErrInvalidSide}
	}
	i := lines.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}

	line := (*lines)[i]
	account := line.Account
	b.input = Input{
		Side:    side,
		Account: &account,
		Memo:    line.Memo,
	}
	if line.Magnitude.IsPositive() {
		b.input.Amount = money.FormatInput(line.Magnitude)
	}
	b.editingID = id

	return nil
}

// CancelEdit clears the input buffer and leaves edit-line mode.
func (b *Builder) CancelEdit() {
	b.clearInput()
}

// RemoveLine removes a line unconditionally. It reports whether a line was removed.
func (b *Builder) RemoveLine(side posting.Side, id string) bool {
	lines := b.bucket(side)
	if lines == nil || !lines.remove(id) {
		return false
	}
	if b.editingID == id {
		b.clearInput()
	}
	b.logger.Debug("Removed journal line", "side", side, "id", id)
	b.touch()
	return true
}

// Lines returns a copy of one bucket in entry order.
func (b *Builder) Lines(side posting.Side) []Line {
	lines := b.bucket(side)
	if lines == nil {
		return nil
	}
	out := make([]Line, len(*lines))
	copy(out, *lines)
	return out
}

// Debits returns a copy of the debit lines.
func (b *Builder) Debits() []Line {
	return b.Lines(posting.Debit)
}

// Credits returns a copy of the credit lines.
func (b *Builder) Credits() []Line {
	return b.Lines(posting.Credit)
}

// Search returns the lines whose account label or memo contains term,
// ignoring case. An empty term matches everything.
func (b *Builder) Search(term string) (debits, credits []Line) {
	term = strings.ToLower(strings.TrimSpace(term))
	match := func(l Line) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(l.Account.Label()), term) ||
			strings.Contains(strings.ToLower(l.Memo), term)
	}
	for _, l := range b.debits {
		if match(l) {
			debits = append(debits, l)
		}
	}
	for _, l := range b.credits {
		if match(l) {
			credits = append(credits, l)
		}
	}
	return debits, credits
}

// Totals returns the sum of magnitudes of each bucket.
func (b *Builder) Totals() (debit, credit decimal.Decimal) {
	return lineSum(b.debits).sum(), lineSum(b.credits).sum()
}

// IsBalanced reports whether total debit equals total credit. Amounts are
// held at cent precision, so the comparison is exact.
func (b *Builder) IsBalanced() bool {
	debit, credit := b.Totals()
	return debit.Equal(credit)
}

// Difference returns total debit minus total credit.
func (b *Builder) Difference() decimal.Decimal {
	debit, credit := b.Totals()
	return debit.Sub(credit)
}

// Validate checks every precondition of Submit against h and the current lines.
func (b *Builder) Validate(h Header) error {
	var missing []string
	if strings.TrimSpace(h.JournalType) == "" {
		missing = append(missing, "journal type")
	}
	if strings.TrimSpace(h.Branch) == "" {
		missing = append(missing, "branch")
	}
	if h.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(h.Reference) == "" {
		missing = append(missing, "reference")
	}
	if len(missing) > 0 {
		return &ValidationError{Err: ErrMissingField, Fields: missing}
	}

	if len(b.debits) == 0 || len(b.credits) == 0 {
		return &ValidationError{Err: ErrNoLines}
	}

	var empty []string
	for i, l := range b.debits {
		if !l.Magnitude.IsPositive() {
			empty = append(empty, fmt.Sprintf("debit line %d (%s)", i+1, l.Account.Code))
		}
	}
	for i, l := range b.credits {
		if !l.Magnitude.IsPositive() {
			empty = append(empty, fmt.Sprintf("credit line %d (%s)", i+1, l.Account.Code))
		}
	}
	if len(empty) > 0 {
		return &ValidationError{Err: ErrNonPositiveAmount, Fields: empty}
	}

	debit, credit := b.Totals()
	if !debit.Equal(credit) {
		return &ValidationError{Err: ErrUnbalanced, TotalDebit: debit, TotalCredit: credit}
	}

	return nil
}

// Submit validates the draft against h and persists it, creating a new
// journal or updating the one being edited. Validation always runs
// immediately before the request; on a validation failure no request is made.
//
// On success the draft is cleared, or in repeat mode the journal type,
// branch, date and every line's account and memo are kept with zeroed
// amounts and returned as Result.Continuation.
func (b *Builder) Submit(ctx context.Context, h Header, s Submitter) (*Result, error) {
	if b.phase == phaseSubmitting {
		return nil, ErrSubmitting
	}

	b.header = h

	if err := b.Validate(h); err != nil {
		b.fail(err)
		return nil, err
	}

	payload := b.Payload(h)
	total, _ := b.Totals()

	b.phase = phaseSubmitting

	var (
		txn *backend.Transaction
		err error
	)
	updated := b.editID != 0
	if updated {
		b.logger.Info("Updating journal", "id", b.editID, "reference", h.Reference, "total", total.String())
		txn, err = s.UpdateTransaction(ctx, b.editID, payload)
	} else {
		b.logger.Info("Creating journal", "reference", h.Reference, "total", total.String())
		txn, err = s.CreateTransaction(ctx, payload)
	}
	if err != nil {
		b.fail(err)
		b.logger.Warn("Journal submission failed", "reference", h.Reference, "error", err)
		return nil, err
	}

	result := &Result{
		Transaction: txn,
		Payload:     payload,
		Updated:     updated,
		Total:       total,
	}

	if b.repeat {
		result.Continuation = b.continuation()
		b.restore(result.Continuation)
	} else {
		b.clear()
	}

	b.editID = 0
	b.phase = phaseSubmitted

	return result, nil
}

// Cancel discards the draft, including any repeat-mode state.
func (b *Builder) Cancel() {
	b.clear()
	b.repeat = false
	b.editID = 0
	b.phase = phaseDraft
}

// LastError returns the error of the last failed Submit.
func (b *Builder) LastError() error {
	return b.lastErr
}

func (b *Builder) fail(err error) {
	b.phase = phaseFailed
	b.lastErr = err
}

func (b *Builder) touch() {
	if b.phase != phaseSubmitting {
		b.phase = phaseDraft
	}
}

func (b *Builder) clearInput() {
	b.input = Input{Side: posting.Debit}
	b.editingID = ""
}

func (b *Builder) clear() {
	b.header = Header{}
	b.debits = nil
	b.credits = nil
	b.lastErr = nil
	b.clearInput()
}

func (b *Builder) bucket(side posting.Side) *lineList {
	switch side {
	case posting.Debit:
		return (*lineList)(&b.debits)
	case posting.Credit:
		return (*lineList)(&b.credits)
	}
	return nil
}

// replace swaps the line with line.ID in side, or moves it there from the
// other bucket when the side was changed while editing.
func (b *Builder) replace(side posting.Side, line Line) bool {
	target := b.bucket(side)
	if i := target.index(line.ID); i >= 0 {
		(*target)[i] = line
		return true
	}

	other := b.bucket(posting.Debit)
	if side == posting.Debit {
		other = b.bucket(posting.Credit)
	}
	if !other.remove(line.ID) {
		return false
	}
	target.append(line)
	return true
}

type lineList []Line

func (l *lineList) append(line Line) {
	*l = append(*l, line)
}

func (l *lineList) index(id string) int {
	for i, line := range *l {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (l *lineList) remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	*l = append((*l)[:i:i], (*l)[i+1:]...)
	return true
}

type lineSum []Line

func (l lineSum) sum() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l {
		total = total.Add(line.Magnitude)
	}
	return total
}
