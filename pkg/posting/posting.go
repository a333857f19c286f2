// Package posting holds the data model shared by the journal builder and the
// ledger: accounts, debit/credit sides and signed postings.
package posting

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a chart-of-accounts entry. It is reference data owned by the
// remote API; nothing in this module mutates it.
type Account struct {
	Code string `json:"account_code" yaml:"code"`
	Name string `json:"account_name" yaml:"name"`
}

// Label returns the account as shown in selectors: "1000 | Kas".
func (a Account) Label() string {
	if a.Name == "" {
		return a.Code
	}
	return fmt.Sprintf("%s | %s", a.Code, a.Name)
}

// Side is the bucket a journal line belongs to.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// ParseSide accepts "debit"/"credit" and the Indonesian "debit"/"kredit".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "d":
		return Debit, nil
	case "credit", "kredit", "c", "k":
		return Credit, nil
	}
	return "", fmt.Errorf("invalid side %q: expected debit or credit", s)
}

// Valid reports whether s is Debit or Credit.
func (s Side) Valid() bool {
	return s == Debit || s == Credit
}

// Signed projects a positive magnitude onto the signed posting stream:
// debit stays positive, credit becomes negative.
func (s Side) Signed(magnitude decimal.Decimal) decimal.Decimal {
	if s == Credit {
		return magnitude.Neg()
	}
	return magnitude
}

// Posting is a single signed movement against one account on one date.
type Posting struct {
	AccountCode string
	AccountName string
	Date        time.Time
	Reference   string
	Memo        string
	Amount      decimal.Decimal // debit positive, credit negative
}

// Debit returns the debit part of the posting (zero for credits).
func (p Posting) Debit() decimal.Decimal {
	if p.Amount.IsPositive() {
		return p.Amount
	}
	return decimal.Zero
}

// Credit returns the credit part of the posting as a positive magnitude.
func (p Posting) Credit() decimal.Decimal {
	if p.Amount.IsNegative() {
		return p.Amount.Neg()
	}
	return decimal.Zero
}

// Normalize folds a debit/credit column pair into one signed amount.
func Normalize(debit, credit decimal.Decimal) decimal.Decimal {
	return debit.Sub(credit)
}
