package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestTransactionRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurnal.db")
	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer conn.Close()

	if conn.Path() != path {
		t.Errorf("Path() = %q, expected %q", conn.Path(), path)
	}

	errStop := errors.New("stop")
	err = conn.Transaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO history_metadata (key, value) VALUES ('k', 'v')`); err != nil {
			return err
		}
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Transaction() error = %v, expected %v", err, errStop)
	}

	if v, err := NewHistory(conn).GetMetadata("k"); err != nil || v != "" {
		t.Errorf("GetMetadata() = %q, %v after rollback", v, err)
	}
}
