// Package ledger computes the general ledger: per-account opening balances,
// in-window postings and running balances over a reporting window.
package ledger

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// Window is a reporting window. A zero Start or End means that bound is absent.
// Start is inclusive from midnight; End is inclusive through the end of its day.
type Window struct {
	Start time.Time
	End   time.Time
}

// HasStart reports whether the window has a lower bound.
func (w Window) HasStart() bool { return !w.Start.IsZero() }

// HasEnd reports whether the window has an upper bound.
func (w Window) HasEnd() bool { return !w.End.IsZero() }

// Filter narrows the emitted accounts by case-insensitive substring. It
// never affects balances.
type Filter struct {
	AccountCode string
	AccountName string
}

func (f Filter) match(code, name string) bool {
	if term := strings.ToLower(strings.TrimSpace(f.AccountCode)); term != "" {
		if !strings.Contains(strings.ToLower(code), term) {
			return false
		}
	}
	if term := strings.ToLower(strings.TrimSpace(f.AccountName)); term != "" {
		if !strings.Contains(strings.ToLower(name), term) {
			return false
		}
	}
	return true
}

// Entry is an in-window posting with the running balance after it.
type Entry struct {
	posting.Posting
	Balance decimal.Decimal
}

// Account is the ledger of one account.
type Account struct {
	Code           string
	Name           string
	OpeningBalance decimal.Decimal
	Entries        []Entry
}

// Totals summarizes an Account's in-window movement.
type Totals struct {
	Debit   decimal.Decimal // sum of positive amounts
	Credit  decimal.Decimal // sum of negative amounts, as a magnitude
	Closing decimal.Decimal
}

// Totals returns the debit and credit totals of the in-window entries and
// the closing balance.
func (a Account) Totals() Totals {
	t := Totals{
		Debit:   decimal.Zero,
		Credit:  decimal.Zero,
		Closing: a.OpeningBalance,
	}
	for _, e := range a.Entries {
		t.Debit = t.Debit.Add(e.Debit())
		t.Credit = t.Credit.Add(e.Credit())
	}
	if n := len(a.Entries); n > 0 {
		t.Closing = a.Entries[n-1].Balance
	}
	return t
}

// Aggregator computes ledgers. Dates are cut at midnight in its location.
type Aggregator struct {
	loc    *time.Location
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLocation sets the time zone in which window days start and end.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAggregator creates an Aggregator working in UTC unless configured otherwise.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		loc:    time.UTC,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the aggregator's time zone.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// ParseWindow builds a Window from YYYY-MM-DD (or ISO timestamp) strings.
// A bound that is empty or cannot be parsed is treated as absent.
func (a *Aggregator) ParseWindow(start, end string) Window {
	var w Window
	if t, ok := posting.ParseDate(start, a.loc); ok {
		w.Start = posting.Day(t, a.loc)
	} else if strings.TrimSpace(start) != "" {
		a.logger.Warn("Ignoring unparseable window start", "start", start)
	}
	if t, ok := posting.ParseDate(end, a.loc); ok {
		w.End = posting.Day(t, a.loc)
	} else if strings.TrimSpace(end) != "" {
		a.logger.Warn("Ignoring unparseable window end", "end", end)
	}
	return w
}

// Compute builds the ledger of every account in postings.
//
// Accounts appear in the order their first posting arrives. Within an
// account, postings are ordered by date; same-date postings keep arrival
// order. The opening balance is the sum of postings dated before the start
// day. Accounts with no in-window entries and a zero opening balance are
// dropped, then the filter is applied.
//
// Compute does not modify postings and returns the same output for the same
// input.
func (a *Aggregator) Compute(postings []posting.Posting, filter Filter, window Window) []Account {
	var (
		order  []string
		groups = make(map[string][]posting.Posting)
		names  = make(map[string]string)
	)
	for _, p := range postings {
		if _, ok := groups[p.AccountCode]; !ok {
			order = append(order, p.AccountCode)
			groups[p.AccountCode] = nil
		}
		groups[p.AccountCode] = append(groups[p.AccountCode], p)
		if names[p.AccountCode] == "" {
			names[p.AccountCode] = p.AccountName
		}
	}

	var start, endExclusive time.Time
	if window.HasStart() {
		start = posting.Day(window.Start, a.loc)
	}
	if window.HasEnd() {
		endExclusive = posting.Day(window.End, a.loc).AddDate(0, 0, 1)
	}

	result := make([]Account, 0, len(order))
	for _, code := range order {
		group := groups[code]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		acct := Account{
			Code:           code,
			Name:           names[code],
			OpeningBalance: decimal.Zero,
		}

		for _, p := range group {
			if window.HasStart() && p.Date.Before(start) {
				acct.OpeningBalance = acct.OpeningBalance.Add(p.Amount)
				continue
			}
			if window.HasEnd() && !p.Date.Before(endExclusive) {
				continue
			}
			acct.Entries = append(acct.Entries, Entry{Posting: p})
		}

		balance := acct.OpeningBalance
		for i := range acct.Entries {
			balance = balance.Add(acct.Entries[i].Amount)
			acct.Entries[i].Balance = balance
		}

		if len(acct.Entries) == 0 && acct.OpeningBalance.IsZero() {
			continue
		}
		if acct.Entries == nil {
			acct.Entries = []Entry{}
		}
		if !filter.match(acct.Code, acct.Name) {
			continue
		}
		result = append(result, acct)
	}

	a.logger.Debug("Computed ledger", "postings", len(postings), "accounts", len(result))

	return result
}
