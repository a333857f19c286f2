package journal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// ErrUnknownAccount is returned when a template names an account that is not
// in the chart of accounts.
var ErrUnknownAccount = errors.New("account not in chart of accounts")

// Template is a journal described in YAML.
//
//	journal_type: JU
//	branch: PST
//	date: 2024-02-05
//	reference: JU-0001
//	debits:
//	  - account: "1000"
//	    memo: Setoran modal
//	    amount: 500.000
//	credits:
//	  - account: "3000"
//	    amount: 500.000
type Template struct {
	JournalType string         `yaml:"journal_type"`
	Branch      string         `yaml:"branch"`
	Date        string         `yaml:"date"`
	Reference   string         `yaml:"reference"`
	Debits      []TemplateLine `yaml:"debits"`
	Credits     []TemplateLine `yaml:"credits"`
}

// TemplateLine is one line of a Template. An empty Account fills in the
// amount of the retained line at the same position (repeat mode).
type TemplateLine struct {
	Account string `yaml:"account"`
	Memo    string `yaml:"memo"`
	Amount  string `yaml:"amount"`
}

// LoadTemplate reads a Template from a YAML file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a Template from YAML.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &t, nil
}

// Apply enters the template into b. Header fields set in the template
// override the builder's; lines are entered through AddOrUpdateLine so they
// get the same validation as interactive input.
func (t *Template) Apply(b *Builder, chart *posting.Chart) error {
	h := b.Header()
	if t.JournalType != "" {
		h.JournalType = t.JournalType
	}
	if t.Branch != "" {
		h.Branch = t.Branch
	}
	if t.Reference != "" {
		h.Reference = t.Reference
	}
	if t.Date != "" {
		d, ok := posting.ParseDate(t.Date, nil)
		if !ok {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", t.Date)
		}
		h.Date = posting.Day(d, nil)
	}
	b.SetHeader(h)

	if err := t.applyLines(b, chart, posting.Debit, t.Debits); err != nil {
		return err
	}
	return t.applyLines(b, chart, posting.Credit, t.Credits)
}

func (t *Template) applyLines(b *Builder, chart *posting.Chart, side posting.Side, lines []TemplateLine) error {
	retained := b.Lines(side)

	for i, tl := range lines {
		if strings.TrimSpace(tl.Account) == "" {
			if i >= len(retained) {
				return fmt.Errorf("%s line %d: %w", side, i+1, ErrMissingField)
			}
			line := retained[i]
			if err := b.BeginEdit(side, line.ID); err != nil {
				return err
			}
			memo := line.Memo
			if tl.Memo != "" {
				memo = tl.Memo
			}
			account := line.Account
			if _, err := b.AddOrUpdateLine(side, &account, memo, tl.Amount); err != nil {
				b.CancelEdit()
				return fmt.Errorf("%s line %d: %w", side, i+1, err)
			}
			continue
		}

		account, ok := chart.Resolve(tl.Account)
		if !ok {
			return fmt.Errorf("%s line %d: %w: %s", side, i+1, ErrUnknownAccount, tl.Account)
		}
		if _, err := b.AddOrUpdateLine(side, account, tl.Memo, tl.Amount); err != nil {
			return fmt.Errorf("%s line %d: %w", side, i+1, err)
		}
	}

	return nil
}
