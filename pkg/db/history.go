package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Action is what a submission did on the server.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// DefaultSlot is the continuation slot used by the CLI.
const DefaultSlot = "default"

// SubmissionRecord represents a submission history record.
type SubmissionRecord struct {
	ID          int64
	Action      Action
	JournalID   int64
	TransNo     int64
	Reference   string
	JournalType string
	Branch      string
	TransDate   string
	Total       string
	LineCount   int
	SubmittedAt time.Time
}

// History manages submission history, continuations and metadata.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

const insertSubmission = `
	INSERT INTO submission_history
		(action, journal_id, trans_no, reference, journal_type, branch, trans_date, total, line_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// ContinuationChange is what a completed submission does to the saved
// repeat-mode continuation. The zero value leaves it untouched.
type ContinuationChange struct {
	Slot    string
	Payload []byte // replaces the slot when set
	Clear   bool   // removes the slot when Payload is nil
}

// RecordSubmission records a successful create or update and applies the
// continuation change in the same transaction.
func (h *History) RecordSubmission(ctx context.Context, record SubmissionRecord, change ContinuationChange) error {
	return h.conn.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertSubmission,
			string(record.Action),
			record.JournalID,
			record.TransNo,
			record.Reference,
			record.JournalType,
			record.Branch,
			record.TransDate,
			record.Total,
			record.LineCount,
		)
		if err != nil {
			return fmt.Errorf("failed to record submission: %w", err)
		}

		switch {
		case change.Payload != nil:
			_, err = tx.ExecContext(ctx, upsertContinuation, change.Slot, change.Payload)
		case change.Clear:
			_, err = tx.ExecContext(ctx, deleteContinuation, change.Slot)
		}
		if err != nil {
			return fmt.Errorf("failed to update continuation: %w", err)
		}
		return nil
	})
}

// GetByTransNo retrieves the latest record for a transaction number.
// Returns nil when there is none.
func (h *History) GetByTransNo(transNo int64) (*SubmissionRecord, error) {
	query := `
		SELECT id, action, journal_id, trans_no, reference, journal_type, branch,
		       trans_date, total, line_count, submitted_at
		FROM submission_history
		WHERE trans_no = ?
		ORDER BY id DESC
		LIMIT 1
	`

	record, err := scanRecord(h.conn.QueryRow(query, transNo))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission record: %w", err)
	}

	return record, nil
}

// ListRecent retrieves the most recent records, newest first.
func (h *History) ListRecent(limit int) ([]SubmissionRecord, error) {
	query := `
		SELECT id, action, journal_id, trans_no, reference, journal_type, branch,
		       trans_date, total, line_count, submitted_at
		FROM submission_history
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var records []SubmissionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission record: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*SubmissionRecord, error) {
	var (
		record SubmissionRecord
		action string
	)
	if err := s.Scan(
		&record.ID,
		&action,
		&record.JournalID,
		&record.TransNo,
		&record.Reference,
		&record.JournalType,
		&record.Branch,
		&record.TransDate,
		&record.Total,
		&record.LineCount,
		&record.SubmittedAt,
	); err != nil {
		return nil, err
	}
	record.Action = Action(action)
	return &record, nil
}

// MarkDeleted removes the history of a deleted journal.
// It reports whether any record was removed.
func (h *History) MarkDeleted(transNo int64) (bool, error) {
	result, err := h.conn.Exec(`DELETE FROM submission_history WHERE trans_no = ?`, transNo)
	if err != nil {
		return false, fmt.Errorf("failed to delete submission records: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

const (
	upsertContinuation = `
		INSERT INTO draft_continuations (slot, payload, saved_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			saved_at = CURRENT_TIMESTAMP
	`
	deleteContinuation = `DELETE FROM draft_continuations WHERE slot = ?`
)

// LoadContinuation returns the continuation in slot without removing it.
// Returns nil when the slot is empty.
func (h *History) LoadContinuation(slot string) ([]byte, error) {
	var payload []byte
	err := h.conn.QueryRow(`SELECT payload FROM draft_continuations WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load continuation: %w", err)
	}

	return payload, nil
}

// DiscardContinuation removes the continuation in slot.
// It reports whether one was stored.
func (h *History) DiscardContinuation(slot string) (bool, error) {
	result, err := h.conn.Exec(deleteContinuation, slot)
	if err != nil {
		return false, fmt.Errorf("failed to discard continuation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents submission statistics.
type Stats struct {
	TotalCreated        int
	TotalUpdated        int
	PendingContinuation bool
	LastSubmission      sql.NullString
}

// GetStats retrieves submission statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM submission_history WHERE action = 'create'`).Scan(&stats.TotalCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to get create count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COUNT(*) FROM submission_history WHERE action = 'update'`).Scan(&stats.TotalUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to get update count: %w", err)
	}

	var pending int
	err = h.conn.QueryRow(`SELECT COUNT(*) FROM draft_continuations`).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("failed to get continuation count: %w", err)
	}
	stats.PendingContinuation = pending > 0

	err = h.conn.QueryRow(`SELECT MAX(submitted_at) FROM submission_history`).Scan(&stats.LastSubmission)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last submission time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(key string) (string, error) {
	var value string
	err := h.conn.QueryRow(`SELECT value FROM history_metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO history_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
