// Package report renders journals and ledgers as plain text and stores
// ledger reports on disk.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/ledger"
	"github.com/shunichi-ikebuchi/jurnal/pkg/money"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

const (
	memoWidth   = 28
	amountWidth = 18
)

// Formatter renders ledger reports. Amounts use id-ID formatting.
type Formatter struct {
	now func() time.Time
}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// Period describes the report window as shown in the heading:
// "2024-02-01 s/d 2024-02-29", with "Awal"/"Akhir" for an open bound.
func Period(from, to string) string {
	if from == "" && to == "" {
		return "Semua Periode"
	}
	if from == "" {
		from = "Awal"
	}
	if to == "" {
		to = "Akhir"
	}
	return fmt.Sprintf("%s s/d %s", from, to)
}

// FormatLedger renders a general ledger report.
func (f *Formatter) FormatLedger(accounts []ledger.Account, period string) string {
	var sb strings.Builder

	sb.WriteString("BUKU BESAR\n")
	sb.WriteString(fmt.Sprintf("Periode: %s\n", period))
	sb.WriteString(fmt.Sprintf("Dicetak: %s\n", f.now().Format("2006-01-02 15:04")))

	if len(accounts) == 0 {
		sb.WriteString("\nTidak ada data\n")
		return sb.String()
	}

	for _, acct := range accounts {
		sb.WriteString("\n")
		sb.WriteString(f.FormatAccount(acct))
	}

	return sb.String()
}

// FormatAccount renders one account: opening balance, entries with running
// balance and totals.
func (f *Formatter) FormatAccount(acct ledger.Account) string {
	var sb strings.Builder

	label := posting.Account{Code: acct.Code, Name: acct.Name}.Label()
	sb.WriteString(label)
	sb.WriteString("\n")

	rule := strings.Repeat("-", 10+1+14+1+memoWidth+3*(1+amountWidth))
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-10s %-14s %-*s %*s %*s %*s\n",
		"Tanggal", "Referensi", memoWidth, "Keterangan",
		amountWidth, "Debit", amountWidth, "Kredit", amountWidth, "Saldo"))
	sb.WriteString(rule)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-10s %-14s %-*s %*s %*s %*s\n",
		"", "", memoWidth, "Saldo Awal",
		amountWidth, "", amountWidth, "", amountWidth, money.Format(acct.OpeningBalance)))

	for _, e := range acct.Entries {
		sb.WriteString(fmt.Sprintf("%-10s %-14s %-*s %*s %*s %*s\n",
			e.Date.Format(posting.DateFormat),
			truncate(e.Reference, 14),
			memoWidth, truncate(e.Memo, memoWidth),
			amountWidth, blankZero(e.Debit()),
			amountWidth, blankZero(e.Credit()),
			amountWidth, money.Format(e.Balance)))
	}

	totals := acct.Totals()
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-10s %-14s %-*s %*s %*s %*s\n",
		"", "", memoWidth, "Total",
		amountWidth, money.Format(totals.Debit),
		amountWidth, money.Format(totals.Credit),
		amountWidth, money.Format(totals.Closing)))

	return sb.String()
}

// FormatJournalRows renders a page of the journal table.
func (f *Formatter) FormatJournalRows(rows []backend.JournalRow) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-8s %-8s %-10s %-14s %-6s %-8s %*s\n",
		"ID", "No", "Tanggal", "Referensi", "Jenis", "Cabang", amountWidth, "Jumlah"))
	for _, r := range rows {
		date := r.TranDate
		if t, ok := posting.ParseDate(r.TranDate, nil); ok {
			date = t.Format(posting.DateFormat)
		}
		sb.WriteString(fmt.Sprintf("%-8d %-8d %-10s %-14s %-6s %-8s %*s\n",
			r.ID, r.TransNo, date, truncate(r.Reference, 14), r.Kodej, r.Proyek,
			amountWidth, money.Format(r.Amount)))
	}

	return sb.String()
}

// FormatPayload renders a journal about to be submitted, one line per
// posting, in the style of a double-entry listing.
func (f *Formatter) FormatPayload(p backend.TransactionPayload) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s * \"%s\" [%s/%s]\n", p.TransDate, p.NoRef, p.Kodej, p.Proyek))

	write := func(accounts, amounts, memos []string, sign string) {
		for i, account := range accounts {
			sb.WriteString("  ")
			sb.WriteString(account)

			// Right-align amount
			spaces := max(1, 40-len(account))
			sb.WriteString(strings.Repeat(" ", spaces))

			amount := amounts[i]
			if d, err := decimal.NewFromString(amount); err == nil {
				amount = money.Format(d)
			}
			sb.WriteString(sign)
			sb.WriteString(amount)

			if i < len(memos) && memos[i] != "" {
				sb.WriteString(fmt.Sprintf(" ; %s", memos[i]))
			}
			sb.WriteString("\n")
		}
	}
	write(p.DebitAccounts, p.DebitAmounts, p.DebitMemos, "")
	write(p.CreditAccounts, p.CreditAmounts, p.CreditMemos, "-")

	return sb.String()
}

func blankZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return money.Format(d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
