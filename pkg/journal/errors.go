package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/money"
)

// Input validation errors. They are detected locally and never reach the server.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrInvalidSide       = errors.New("side must be debit or credit")
	ErrLineNotFound      = errors.New("journal line not found")
	ErrNoLines           = errors.New("at least one debit and one credit line are required")
	ErrUnbalanced        = errors.New("debit and credit must balance")
	ErrSubmitting        = errors.New("journal is already being submitted")
)

// ValidationError describes which precondition refused an operation.
type ValidationError struct {
	Err    error
	Fields []string

	// Set for ErrUnbalanced.
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnbalanced):
		return fmt.Sprintf("%s: debit %s, credit %s", e.Err, money.Format(e.TotalDebit), money.Format(e.TotalCredit))
	case len(e.Fields) > 0:
		return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Fields, ", "))
	default:
		return e.Err.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Outcome is the user-facing category of a submit failure.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalidInput
	OutcomeDuplicateReference
	OutcomeRejected
	OutcomeUnauthorized
	OutcomeConnectionLost
	OutcomeServerError
)

// Classify maps a Submit error to the outcome the caller must show.
func Classify(err error) Outcome {
	var vErr *ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &vErr):
		return OutcomeInvalidInput
	case errors.Is(err, backend.ErrDuplicateReference):
		return OutcomeDuplicateReference
	case errors.Is(err, backend.ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, backend.ErrInvalidInput), errors.Is(err, backend.ErrNotFound):
		return OutcomeRejected
	case errors.Is(err, backend.ErrConnection),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return OutcomeConnectionLost
	default:
		return OutcomeServerError
	}
}

// Message returns the message shown to the user for an outcome. Raw server
// bodies are never part of it.
func (o Outcome) Message() string {
	switch o {
	case OutcomeOK:
		return "Journal saved"
	case OutcomeInvalidInput:
		return "Complete the journal before saving"
	case OutcomeDuplicateReference:
		return "Reference number already used, choose a different reference"
	case OutcomeRejected:
		return "The server rejected the input, check the journal and try again"
	case OutcomeUnauthorized:
		return "Session is no longer valid, log in again"
	case OutcomeConnectionLost:
		return "Connection lost while saving the journal"
	default:
		return "Failed to save the journal, try again"
	}
}
