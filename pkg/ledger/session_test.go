package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

func amount(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

func TestFromBook(t *testing.T) {
	book := []backend.LedgerAccount{
		{
			AccountCode: "1000",
			AccountName: "Kas",
			Transactions: []backend.LedgerTransaction{
				{TranDate: "2024-01-10T00:00:00.000Z", Amount: amount(1000), Reference: "JU-1"},
				{TranDate: "2024-01-20", Debit: amount(0), Credit: amount(300), Reference: "JU-2"},
				{TranDate: "not a date", Amount: amount(99)},
			},
		},
		{
			AccountCode:  "2000",
			AccountName:  "Hutang",
			Transactions: nil,
		},
	}

	got := NewAggregator().FromBook(book)
	if len(got) != 2 {
		t.Fatalf("len(FromBook()) = %d, expected 2", len(got))
	}
	if !got[0].Amount.Equal(decimal.NewFromInt(1000)) || got[0].AccountName != "Kas" {
		t.Errorf("first posting = %+v", got[0])
	}
	if !got[1].Amount.Equal(decimal.NewFromInt(-300)) {
		t.Errorf("debit/credit pair normalized to %s, expected -300", got[1].Amount)
	}
	if got[1].Date.Format(posting.DateFormat) != "2024-01-20" {
		t.Errorf("date = %v", got[1].Date)
	}
}

type bookFetcher struct {
	book  []backend.LedgerAccount
	err   error
	calls int

	// during runs inside FetchLedger, before it returns.
	during func()
}

func (f *bookFetcher) FetchLedger(ctx context.Context) ([]backend.LedgerAccount, error) {
	f.calls++
	if f.during != nil {
		during := f.during
		f.during = nil
		during()
	}
	return f.book, f.err
}

func sampleBook() []backend.LedgerAccount {
	return []backend.LedgerAccount{{
		AccountCode: "1000",
		AccountName: "Kas",
		Transactions: []backend.LedgerTransaction{
			{TranDate: "2024-01-10", Amount: amount(1000)},
			{TranDate: "2024-01-20", Amount: amount(-300)},
			{TranDate: "2024-02-05", Amount: amount(200)},
		},
	}}
}

func TestSessionRefiltersFromSnapshot(t *testing.T) {
	fetcher := &bookFetcher{book: sampleBook()}
	s := NewSession(nil, fetcher)

	if s.Loaded() {
		t.Error("Loaded() = true before Refresh")
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	wide := s.ReportDates(Filter{}, "", "")
	if len(wide) != 1 || len(wide[0].Entries) != 3 {
		t.Fatalf("unfiltered report = %+v", wide)
	}

	narrow := s.ReportDates(Filter{}, "2024-02-01", "")
	if !narrow[0].OpeningBalance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("OpeningBalance = %s, expected 700", narrow[0].OpeningBalance)
	}

	// Widening again recomputes from the full snapshot.
	again := s.ReportDates(Filter{}, "", "")
	if len(again[0].Entries) != 3 {
		t.Errorf("re-widened report has %d entries, expected 3", len(again[0].Entries))
	}
	if fetcher.calls != 1 {
		t.Errorf("FetchLedger called %d times, expected 1", fetcher.calls)
	}
}

func TestSessionDiscardsStaleResponse(t *testing.T) {
	fetcher := &bookFetcher{book: sampleBook()}
	s := NewSession(nil, fetcher)

	// A newer request is issued while the first is in flight.
	var newer Ticket
	fetcher.during = func() {
		newer = s.Begin()
	}

	err := s.Refresh(context.Background())
	if !errors.Is(err, ErrStale) {
		t.Fatalf("Refresh() error = %v, expected ErrStale", err)
	}
	if s.Loaded() {
		t.Error("stale response was stored")
	}

	fresh := []posting.Posting{{AccountCode: "9000", Amount: decimal.NewFromInt(1)}}
	if !s.Accept(newer, fresh) {
		t.Fatal("Accept() rejected the latest ticket")
	}
	report := s.Report(Filter{}, Window{})
	if len(report) != 1 || report[0].Code != "9000" {
		t.Errorf("Report() = %+v, expected the newer snapshot", report)
	}
}

func TestSessionFetchError(t *testing.T) {
	fetchErr := &backend.APIError{StatusCode: 401, Kind: backend.ErrUnauthorized}
	s := NewSession(nil, &bookFetcher{err: fetchErr})

	err := s.Refresh(context.Background())
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Errorf("Refresh() error = %v, expected ErrUnauthorized", err)
	}
	if got := s.Report(Filter{}, Window{}); len(got) != 0 {
		t.Errorf("Report() = %+v, expected empty", got)
	}
}
