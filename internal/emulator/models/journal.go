// Package models holds the records served by the journal API emulator.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType is a journal-type option (kode + nama).
type JournalType struct {
	Kode string `json:"kode" yaml:"kode"`
	Nama string `json:"nama" yaml:"nama"`
}

// Branch is a branch/project option.
type Branch struct {
	DepCode string `json:"dep_code" yaml:"dep_code"`
	DepName string `json:"dep_name" yaml:"dep_name"`
}

// ChartAccount is an entry of the chart of accounts.
type ChartAccount struct {
	AccountCode string `json:"account_code" yaml:"account_code"`
	AccountName string `json:"account_name" yaml:"account_name"`
}

// Line is a stored debit or credit line.
type Line struct {
	ID      string          `json:"id"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
	Memo    string          `json:"memo"`
}

// Journal is a persisted journal with its lines.
type Journal struct {
	ID        int64     `json:"id"`
	TransNo   int64     `json:"trans_no"`
	Kodej     string    `json:"kodej"`
	Proyek    string    `json:"proyek"`
	TransDate string    `json:"trans_date"` // YYYY-MM-DD
	Reference string    `json:"reference"`
	Debits    []Line    `json:"debits"`
	Credits   []Line    `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Total returns the sum of the debit lines.
func (j *Journal) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Debits {
		total = total.Add(l.Amount)
	}
	return total
}

// TransactionRequest is the body of POST and PUT /jurnal/transaction.
type TransactionRequest struct {
	Kodej          string   `json:"kodej"`
	Proyek         string   `json:"proyek"`
	TransDate      string   `json:"trans_date"`
	NoRef          string   `json:"no_ref"`
	DebitAccounts  []string `json:"debit_accounts"`
	DebitAmounts   []string `json:"debit_amounts"`
	DebitMemos     []string `json:"debit_memos"`
	CreditAccounts []string `json:"credit_accounts"`
	CreditAmounts  []string `json:"credit_amounts"`
	CreditMemos    []string `json:"credit_memos"`
}

// Seed is the reference data loaded into a fresh store.
type Seed struct {
	JournalTypes []JournalType  `yaml:"journal_types"`
	Branches     []Branch       `yaml:"branches"`
	Chart        []ChartAccount `yaml:"chart"`
}
