package journal

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// DraftContinuation is the state repeat mode carries from one submitted
// journal to the next: header fields except the reference, and the account
// and memo of every line. Amounts are always zero and are not stored.
type DraftContinuation struct {
	JournalType string             `json:"journal_type"`
	Branch      string             `json:"branch"`
	Date        string             `json:"date"` // YYYY-MM-DD
	Debits      []ContinuationLine `json:"debits"`
	Credits     []ContinuationLine `json:"credits"`
}

// ContinuationLine is a retained line.
type ContinuationLine struct {
	Account posting.Account `json:"account"`
	Memo    string          `json:"memo"`
}

// Marshal encodes the continuation for hand-off to the next screen.
func (c *DraftContinuation) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// UnmarshalContinuation decodes a continuation produced by Marshal.
func UnmarshalContinuation(data []byte) (*DraftContinuation, error) {
	var c DraftContinuation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode draft continuation: %w", err)
	}
	return &c, nil
}

func (b *Builder) continuation() *DraftContinuation {
	c := &DraftContinuation{
		JournalType: b.header.JournalType,
		Branch:      b.header.Branch,
	}
	if !b.header.Date.IsZero() {
		c.Date = b.header.Date.Format(posting.DateFormat)
	}
	for _, l := range b.debits {
		c.Debits = append(c.Debits, ContinuationLine{Account: l.Account, Memo: l.Memo})
	}
	for _, l := range b.credits {
		c.Credits = append(c.Credits, ContinuationLine{Account: l.Account, Memo: l.Memo})
	}
	return c
}

// restore replaces the draft with the continuation and turns repeat mode on.
func (b *Builder) restore(c *DraftContinuation) {
	b.clear()

	b.header.JournalType = c.JournalType
	b.header.Branch = c.Branch
	if d, ok := posting.ParseDate(c.Date, nil); ok {
		b.header.Date = d
	}

	for _, cl := range c.Debits {
		b.debits = append(b.debits, Line{ID: b.newID(), Account: cl.Account, Memo: cl.Memo, Magnitude: decimal.Zero})
	}
	for _, cl := range c.Credits {
		b.credits = append(b.credits, Line{ID: b.newID(), Account: cl.Account, Memo: cl.Memo, Magnitude: decimal.Zero})
	}

	b.repeat = true
}
