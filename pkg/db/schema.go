// Package db provides SQLite storage for journal submission history, the
// repeat-mode continuation hand-off and metadata.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Submission history table
-- Tracks journals created or updated through this tool
CREATE TABLE IF NOT EXISTS submission_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,              -- 'create' or 'update'
    journal_id INTEGER NOT NULL,       -- row id from the API
    trans_no INTEGER NOT NULL,         -- transaction number from the API
    reference TEXT NOT NULL,           -- no_ref
    journal_type TEXT NOT NULL,        -- kodej
    branch TEXT NOT NULL,              -- proyek
    trans_date TEXT NOT NULL,          -- YYYY-MM-DD
    total TEXT NOT NULL,               -- total debit as a decimal string
    line_count INTEGER NOT NULL,
    submitted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submission_history_trans_no
    ON submission_history(trans_no);

CREATE INDEX IF NOT EXISTS idx_submission_history_reference
    ON submission_history(journal_type, reference);

-- Draft continuations
-- Repeat-mode state, replaced or cleared only by a successful submit or "jurnal cancel"
CREATE TABLE IF NOT EXISTS draft_continuations (
    slot TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Metadata table
-- Stores key-value metadata (e.g. last ledger export)
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
