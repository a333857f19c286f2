package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// PageSize is the number of journals per table page.
const PageSize = 10

// Period is a date preset of the journal table.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodRange Period = "range"
)

// ParsePeriod accepts the English preset names and the Indonesian ones
// ("semua", "hari_ini", "bulan_ini", "tahun_ini", "rentang").
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "semua":
		return PeriodAll, nil
	case "today", "hari_ini":
		return PeriodToday, nil
	case "month", "bulan_ini":
		return PeriodMonth, nil
	case "year", "tahun_ini":
		return PeriodYear, nil
	case "range", "rentang":
		return PeriodRange, nil
	}
	return "", fmt.Errorf("invalid period %q: expected all, today, month, year or range", s)
}

// TableQuery selects a page of the journal table.
type TableQuery struct {
	Period Period
	From   time.Time // PeriodRange only; both bounds are required
	To     time.Time
	Search string // matches reference or journal type, ignoring case
	Desc   bool   // sort by trans_no descending
	Page   int    // 1-based; 0 means every row
}

// TablePage is one page of the journal table.
type TablePage struct {
	Rows       []backend.JournalRow
	Page       int
	TotalPages int
	TotalRows  int // rows matching the query across all pages
}

// QueryTable sorts rows by trans_no, applies the period preset relative to
// now and the search term, and cuts the requested page. Dates are compared
// in loc (UTC when nil). Rows is not modified.
func QueryTable(rows []backend.JournalRow, q TableQuery, now time.Time, loc *time.Location) TablePage {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]backend.JournalRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if q.Desc {
			return sorted[i].TransNo > sorted[j].TransNo
		}
		return sorted[i].TransNo < sorted[j].TransNo
	})

	today := posting.Day(now, loc)
	term := strings.ToLower(strings.TrimSpace(q.Search))

	var matched []backend.JournalRow
	for _, r := range sorted {
		if !inPeriod(r, q, today, loc) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Reference), term) &&
			!strings.Contains(strings.ToLower(r.Kodej), term) {
			continue
		}
		matched = append(matched, r)
	}

	page := TablePage{
		TotalRows:  len(matched),
		TotalPages: (len(matched) + PageSize - 1) / PageSize,
	}

	if q.Page <= 0 {
		page.Rows = matched
		return page
	}

	page.Page = q.Page
	start := (q.Page - 1) * PageSize
	if start >= len(matched) {
		return page
	}
	page.Rows = matched[start:min(start+PageSize, len(matched))]
	return page
}

func inPeriod(r backend.JournalRow, q TableQuery, today time.Time, loc *time.Location) bool {
	if q.Period == "" || q.Period == PeriodAll {
		return true
	}

	t, ok := posting.ParseDate(r.TranDate, loc)
	if !ok {
		return false
	}
	d := posting.Day(t, loc)

	switch q.Period {
	case PeriodToday:
		return d.Equal(today)
	case PeriodMonth:
		return d.Year() == today.Year() && d.Month() == today.Month()
	case PeriodYear:
		return d.Year() == today.Year()
	case PeriodRange:
		if q.From.IsZero() || q.To.IsZero() {
			return true
		}
		return !d.Before(posting.Day(q.From, loc)) && !d.After(posting.Day(q.To, loc))
	}
	return true
}
