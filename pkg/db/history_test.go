package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *History {
	t.Helper()

	conn, err := Open(filepath.Join(t.TempDir(), "nested", "jurnal.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return NewHistory(conn)
}

func TestRecordSubmission(t *testing.T) {
	h := openTestDB(t)

	records := []SubmissionRecord{
		{Action: ActionCreate, JournalID: 1, TransNo: 1001, Reference: "JU-1", JournalType: "JU", Branch: "PST", TransDate: "2024-02-05", Total: "500000", LineCount: 2},
		{Action: ActionUpdate, JournalID: 1, TransNo: 1001, Reference: "JU-1", JournalType: "JU", Branch: "PST", TransDate: "2024-02-06", Total: "750000", LineCount: 3},
		{Action: ActionCreate, JournalID: 2, TransNo: 1002, Reference: "JU-2", JournalType: "JU", Branch: "PST", TransDate: "2024-02-07", Total: "10", LineCount: 2},
	}
	for _, r := range records {
		if err := h.RecordSubmission(context.Background(), r, ContinuationChange{}); err != nil {
			t.Fatalf("RecordSubmission() error: %v", err)
		}
	}

	got, err := h.GetByTransNo(1001)
	if err != nil {
		t.Fatalf("GetByTransNo() error: %v", err)
	}
	if got == nil || got.Action != ActionUpdate || got.Total != "750000" {
		t.Errorf("GetByTransNo(1001) = %+v, expected the update", got)
	}

	missing, err := h.GetByTransNo(9999)
	if err != nil || missing != nil {
		t.Errorf("GetByTransNo(9999) = %+v, %v", missing, err)
	}

	recent, err := h.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(recent) != 2 || recent[0].TransNo != 1002 {
		t.Errorf("ListRecent(2) = %+v", recent)
	}

	stats, err := h.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.TotalCreated != 2 || stats.TotalUpdated != 1 || !stats.LastSubmission.Valid {
		t.Errorf("GetStats() = %+v", stats)
	}

	deleted, err := h.MarkDeleted(1001)
	if err != nil || !deleted {
		t.Errorf("MarkDeleted(1001) = %v, %v", deleted, err)
	}
	if got, _ := h.GetByTransNo(1001); got != nil {
		t.Error("record still present after MarkDeleted")
	}
}

func keepContinuation(t *testing.T, h *History, payload string) {
	t.Helper()

	record := SubmissionRecord{Action: ActionCreate, JournalID: 1, TransNo: 1001, Reference: "JU-1", JournalType: "JU", Branch: "PST", TransDate: "2024-02-05", Total: "10", LineCount: 2}
	change := ContinuationChange{Slot: DefaultSlot, Payload: []byte(payload)}
	if err := h.RecordSubmission(context.Background(), record, change); err != nil {
		t.Fatalf("RecordSubmission() error: %v", err)
	}
}

func TestLoadContinuationKeepsSlot(t *testing.T) {
	h := openTestDB(t)

	if payload, err := h.LoadContinuation(DefaultSlot); err != nil || payload != nil {
		t.Fatalf("LoadContinuation() on empty slot = %q, %v", payload, err)
	}

	keepContinuation(t, h, `{"journal_type":"JU"}`)
	keepContinuation(t, h, `{"journal_type":"JK"}`)

	stats, err := h.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if !stats.PendingContinuation {
		t.Error("PendingContinuation = false after save")
	}

	for i := 0; i < 2; i++ {
		payload, err := h.LoadContinuation(DefaultSlot)
		if err != nil {
			t.Fatalf("LoadContinuation() error: %v", err)
		}
		if string(payload) != `{"journal_type":"JK"}` {
			t.Errorf("LoadContinuation() #%d = %q, expected the latest save", i+1, payload)
		}
	}
}

func TestRecordSubmissionContinuationChange(t *testing.T) {
	record := SubmissionRecord{Action: ActionCreate, JournalID: 2, TransNo: 1002, Reference: "JU-2", JournalType: "JU", Branch: "PST", TransDate: "2024-02-06", Total: "10", LineCount: 2}

	tests := []struct {
		name   string
		change ContinuationChange
		want   string
	}{
		{"untouched", ContinuationChange{}, `{"journal_type":"JU"}`},
		{"replaced", ContinuationChange{Slot: DefaultSlot, Payload: []byte(`{"journal_type":"JK"}`)}, `{"journal_type":"JK"}`},
		{"cleared", ContinuationChange{Slot: DefaultSlot, Clear: true}, ""},
		{"other slot cleared", ContinuationChange{Slot: "other", Clear: true}, `{"journal_type":"JU"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := openTestDB(t)
			keepContinuation(t, h, `{"journal_type":"JU"}`)

			if err := h.RecordSubmission(context.Background(), record, tt.change); err != nil {
				t.Fatalf("RecordSubmission() error: %v", err)
			}

			payload, err := h.LoadContinuation(DefaultSlot)
			if err != nil {
				t.Fatalf("LoadContinuation() error: %v", err)
			}
			if string(payload) != tt.want {
				t.Errorf("LoadContinuation() = %q, expected %q", payload, tt.want)
			}
			if got, _ := h.GetByTransNo(1002); got == nil {
				t.Error("submission was not recorded")
			}
		})
	}
}

func TestRecordSubmissionCancelledContext(t *testing.T) {
	h := openTestDB(t)
	keepContinuation(t, h, `{"journal_type":"JU"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	record := SubmissionRecord{Action: ActionCreate, JournalID: 3, TransNo: 1003, Reference: "JU-3", JournalType: "JU", Branch: "PST", TransDate: "2024-02-07", Total: "10", LineCount: 2}
	if err := h.RecordSubmission(ctx, record, ContinuationChange{Slot: DefaultSlot, Clear: true}); err == nil {
		t.Fatal("RecordSubmission() expected error for a cancelled context")
	}

	if got, _ := h.GetByTransNo(1003); got != nil {
		t.Errorf("GetByTransNo(1003) = %+v, expected nothing recorded", got)
	}
	if payload, _ := h.LoadContinuation(DefaultSlot); payload == nil {
		t.Error("continuation cleared although the transaction failed")
	}
}

func TestDiscardContinuation(t *testing.T) {
	h := openTestDB(t)

	keepContinuation(t, h, `{}`)

	discarded, err := h.DiscardContinuation(DefaultSlot)
	if err != nil || !discarded {
		t.Errorf("DiscardContinuation() = %v, %v", discarded, err)
	}

	discarded, err = h.DiscardContinuation(DefaultSlot)
	if err != nil || discarded {
		t.Errorf("second DiscardContinuation() = %v, %v", discarded, err)
	}
}

func TestMetadata(t *testing.T) {
	h := openTestDB(t)

	if v, err := h.GetMetadata("last_ledger_export"); err != nil || v != "" {
		t.Errorf("GetMetadata() = %q, %v before set", v, err)
	}
	if err := h.SetMetadata("last_ledger_export", "a"); err != nil {
		t.Fatalf("SetMetadata() error: %v", err)
	}
	if err := h.SetMetadata("last_ledger_export", "b"); err != nil {
		t.Fatalf("SetMetadata() error: %v", err)
	}
	if v, _ := h.GetMetadata("last_ledger_export"); v != "b" {
		t.Errorf("GetMetadata() = %q, expected b", v)
	}
}
