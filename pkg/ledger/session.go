package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// ErrStale is returned by Refresh when a newer fetch was started before this
// one completed. The snapshot is left to the newer fetch.
var ErrStale = errors.New("ledger response superseded by a newer request")

// Fetcher loads the general ledger. *backend.Client implements it.
type Fetcher interface {
	FetchLedger(ctx context.Context) ([]backend.LedgerAccount, error)
}

// Ticket identifies one fetch. Tickets increase monotonically per Session.
type Ticket uint64

// Session holds the unfiltered posting snapshot behind a ledger report.
// Every report is computed from the snapshot, never from an earlier report,
// so narrowing the window keeps opening balances correct.
//
// Session is safe for concurrent use. Only the response of the most recently
// issued ticket is stored.
type Session struct {
	agg     *Aggregator
	fetcher Fetcher

	mu       sync.Mutex
	issued   Ticket
	applied  Ticket
	snapshot []posting.Posting
}

// NewSession creates a Session.
func NewSession(agg *Aggregator, fetcher Fetcher) *Session {
	if agg == nil {
		agg = NewAggregator()
	}
	return &Session{agg: agg, fetcher: fetcher}
}

// Begin issues a new ticket. Any ticket issued earlier becomes stale.
func (s *Session) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept stores postings as the snapshot if t is the latest issued ticket.
// It reports whether the postings were stored.
func (s *Session) Accept(t Ticket, postings []posting.Posting) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		s.agg.logger.Debug("Discarding stale ledger response", "ticket", t, "latest", s.issued)
		return false
	}
	s.snapshot = postings
	s.applied = t
	return true
}

// Refresh fetches the ledger and replaces the snapshot.
func (s *Session) Refresh(ctx context.Context) error {
	t := s.Begin()

	book, err := s.fetcher.FetchLedger(ctx)
	if err != nil {
		return err
	}

	if !s.Accept(t, s.agg.FromBook(book)) {
		return ErrStale
	}
	return nil
}

// Loaded reports whether a snapshot has been stored.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied != 0
}

// Report computes the ledger from the current snapshot.
func (s *Session) Report(filter Filter, window Window) []Account {
	s.mu.Lock()
	postings := s.snapshot
	s.mu.Unlock()
	return s.agg.Compute(postings, filter, window)
}

// ReportDates is Report with the window given as date strings.
func (s *Session) ReportDates(filter Filter, start, end string) []Account {
	return s.Report(filter, s.agg.ParseWindow(start, end))
}
