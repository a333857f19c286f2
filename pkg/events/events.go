// Package events publishes journal lifecycle events for downstream
// consumers (e.g. a ledger cache that must be refreshed after a submit).
package events

import (
	"context"
	"log/slog"
	"time"
)

// Event types.
const (
	TypeJournalSubmitted = "journal_submitted"
	TypeJournalDeleted   = "journal_deleted"
)

// JournalEvent is emitted after a journal is created, updated or deleted.
type JournalEvent struct {
	Type       string    `json:"type"`
	JournalID  int64     `json:"journal_id,omitempty"`
	TransNo    int64     `json:"trans_no"`
	Reference  string    `json:"reference,omitempty"`
	Kodej      string    `json:"kodej,omitempty"`
	Proyek     string    `json:"proyek,omitempty"`
	TransDate  string    `json:"trans_date,omitempty"`
	Total      string    `json:"total,omitempty"`
	Updated    bool      `json:"updated,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key is the partition key: events of one journal stay ordered.
func (e JournalEvent) Key() string {
	return e.Kodej + "/" + e.Reference
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event JournalEvent) error
	Close() error
}

// LogPublisher writes events to a logger. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher. A nil logger means slog.Default().
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event at debug level.
func (p *LogPublisher) Publish(ctx context.Context, event JournalEvent) error {
	p.logger.Debug("Journal event", "type", event.Type, "trans_no", event.TransNo, "reference", event.Reference)
	return nil
}

// Close does nothing.
func (p *LogPublisher) Close() error {
	return nil
}
