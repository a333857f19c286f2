package journal

import (
	"fmt"
	"strings"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// Payload serializes the draft into the API request body. Each bucket
// becomes three parallel arrays: accounts, amounts and memos.
func (b *Builder) Payload(h Header) backend.TransactionPayload {
	p := backend.TransactionPayload{
		Kodej:          strings.TrimSpace(h.JournalType),
		Proyek:         strings.TrimSpace(h.Branch),
		TransDate:      h.Date.Format(posting.DateFormat),
		NoRef:          strings.TrimSpace(h.Reference),
		DebitAccounts:  make([]string, 0, len(b.debits)),
		DebitAmounts:   make([]string, 0, len(b.debits)),
		DebitMemos:     make([]string, 0, len(b.debits)),
		CreditAccounts: make([]string, 0, len(b.credits)),
		CreditAmounts:  make([]string, 0, len(b.credits)),
		CreditMemos:    make([]string, 0, len(b.credits)),
	}

	for _, l := range b.debits {
		p.DebitAccounts = append(p.DebitAccounts, l.Account.Code)
		p.DebitAmounts = append(p.DebitAmounts, l.Magnitude.String())
		p.DebitMemos = append(p.DebitMemos, l.Memo)
	}
	for _, l := range b.credits {
		p.CreditAccounts = append(p.CreditAccounts, l.Account.Code)
		p.CreditAmounts = append(p.CreditAmounts, l.Magnitude.String())
		p.CreditMemos = append(p.CreditMemos, l.Memo)
	}

	return p
}

// Postings projects the draft onto the signed posting stream: debit lines
// become positive postings, credit lines negative ones.
func (b *Builder) Postings(h Header) []posting.Posting {
	out := make([]posting.Posting, 0, len(b.debits)+len(b.credits))
	project := func(side posting.Side, lines []Line) {
		for _, l := range lines {
			out = append(out, posting.Posting{
				AccountCode: l.Account.Code,
				AccountName: l.Account.Name,
				Date:        h.Date,
				Reference:   h.Reference,
				Memo:        l.Memo,
				Amount:      side.Signed(l.Magnitude),
			})
		}
	}
	project(posting.Debit, b.debits)
	project(posting.Credit, b.credits)
	return out
}

// FromDetail hydrates a builder from GET /jurnal/detail/{id} for editing.
// Lines whose account is not in chart keep the bare code as their account.
func FromDetail(id int64, detail *backend.JournalDetail, chart *posting.Chart, opts ...Option) (*Builder, error) {
	if detail == nil {
		return nil, fmt.Errorf("journal %d: empty detail", id)
	}

	b := New(opts...)
	b.editID = id

	h := Header{
		JournalType: detail.Journal.Kodej,
		Branch:      detail.Journal.Proyek,
		Reference:   detail.Journal.Reference,
	}
	if d, ok := posting.ParseDate(detail.Journal.TransDate, nil); ok {
		h.Date = posting.Day(d, nil)
	}
	b.header = h

	convert := func(dl backend.DetailLine) Line {
		account := posting.Account{Code: dl.Account}
		if a, ok := chart.Resolve(dl.Account); ok {
			account = *a
		}
		lineID := dl.ID
		if lineID == "" {
			lineID = b.newID()
		}
		return Line{ID: lineID, Account: account, Memo: dl.Memo, Magnitude: dl.Amount}
	}

	for _, dl := range detail.Debits {
		b.debits = append(b.debits, convert(dl))
	}
	for _, dl := range detail.Credits {
		b.credits = append(b.credits, convert(dl))
	}

	return b, nil
}
