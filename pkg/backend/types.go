// Package backend provides the client and wire types for the accounting REST API
// that persists journals and serves the general ledger.
package backend

import (
	"github.com/shopspring/decimal"
)

// JournalType is an option from GET /jurnal/name.
type JournalType struct {
	Kode string `json:"kode"`
	Nama string `json:"nama"`
}

// Branch is a branch/project option from GET /jurnal/Cabang.
type Branch struct {
	DepCode string `json:"dep_code"`
	DepName string `json:"dep_name"`
}

// ChartAccount is a chart-of-accounts option from GET /bank/chart.
type ChartAccount struct {
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
}

// TransactionPayload is the body of POST /jurnal/transaction and
// PUT /jurnal/transaction/{id}. The debit and credit sets are sent as
// parallel arrays: index i of each array describes the same line.
type TransactionPayload struct {
	Kodej          string   `json:"kodej"`
	Proyek         string   `json:"proyek"`
	TransDate      string   `json:"trans_date"` // YYYY-MM-DD
	NoRef          string   `json:"no_ref"`
	DebitAccounts  []string `json:"debit_accounts"`
	DebitAmounts   []string `json:"debit_amounts"`
	DebitMemos     []string `json:"debit_memos"`
	CreditAccounts []string `json:"credit_accounts"`
	CreditAmounts  []string `json:"credit_amounts"`
	CreditMemos    []string `json:"credit_memos"`
}

// Transaction is the persisted journal returned after a create or update.
type Transaction struct {
	ID        int64  `json:"id"`
	TransNo   int64  `json:"trans_no"`
	Kodej     string `json:"kodej"`
	Proyek    string `json:"proyek"`
	TransDate string `json:"trans_date"`
	Reference string `json:"reference"`
}

// JournalHeader is the "journal" object of GET /jurnal/detail/{id}.
type JournalHeader struct {
	ID        int64  `json:"id,omitempty"`
	TransNo   int64  `json:"trans_no,omitempty"`
	Reference string `json:"reference"`
	TransDate string `json:"trans_date"`
	Kodej     string `json:"kodej"`
	Proyek    string `json:"proyek"`
}

// DetailLine is one debit or credit line of GET /jurnal/detail/{id}.
type DetailLine struct {
	ID      string          `json:"id,omitempty"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
	Memo    string          `json:"memo"`
}

// JournalDetail is the response of GET /jurnal/detail/{id}.
type JournalDetail struct {
	Journal JournalHeader `json:"journal"`
	Debits  []DetailLine  `json:"debits"`
	Credits []DetailLine  `json:"credits"`
}

// JournalRow is one row of GET /jurnal/Table.
type JournalRow struct {
	ID        int64           `json:"id"`
	TransNo   int64           `json:"trans_no"`
	Reference string          `json:"reference"`
	TranDate  string          `json:"tran_date"`
	Kodej     string          `json:"kodej"`
	Proyek    string          `json:"proyek"`
	Amount    decimal.Decimal `json:"amount"`
}

// LedgerTransaction is one movement in GET /bukubesar/all. The API sends
// either a signed amount or a debit/credit pair.
type LedgerTransaction struct {
	TranDate  string              `json:"tran_date"`
	Amount    decimal.NullDecimal `json:"amount"`
	Debit     decimal.NullDecimal `json:"debit,omitempty"`
	Credit    decimal.NullDecimal `json:"credit,omitempty"`
	Reference string              `json:"reference"`
	Memo      string              `json:"memo"`
}

// LedgerAccount is one account of GET /bukubesar/all.
type LedgerAccount struct {
	AccountCode  string              `json:"account_code"`
	AccountName  string              `json:"account_name"`
	Transactions []LedgerTransaction `json:"transactions"`
}

// ErrorResponse is the error body returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
