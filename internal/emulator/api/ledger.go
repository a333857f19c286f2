package api

import (
	"net/http"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

// LedgerHandler serves the general ledger derived from stored journals.
type LedgerHandler struct {
	store *store.Store
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(s *store.Store) *LedgerHandler {
	return &LedgerHandler{store: s}
}

type ledgerTransaction struct {
	TranDate  string          `json:"tran_date"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Memo      string          `json:"memo"`
}

type ledgerAccount struct {
	AccountCode  string              `json:"account_code"`
	AccountName  string              `json:"account_name"`
	Transactions []ledgerTransaction `json:"transactions"`
}

// All handles GET /bukubesar/all. Every chart account is listed in chart
// order; debits are positive and credits negative. Accounts used by
// journals but missing from the chart follow, by code.
func (h *LedgerHandler) All(w http.ResponseWriter, r *http.Request) {
	chart, err := h.store.Chart()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load chart of accounts")
		return
	}
	journals, err := h.store.ListJournals()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list journals")
		return
	}

	writeJSON(w, http.StatusOK, buildLedger(chart, journals))
}

func buildLedger(chart []models.ChartAccount, journals []*models.Journal) []ledgerAccount {
	sort.SliceStable(journals, func(i, j int) bool {
		return journals[i].TransNo < journals[j].TransNo
	})

	accounts := make([]ledgerAccount, 0, len(chart))
	index := make(map[string]int, len(chart))
	for _, a := range chart {
		index[a.AccountCode] = len(accounts)
		accounts = append(accounts, ledgerAccount{
			AccountCode:  a.AccountCode,
			AccountName:  a.AccountName,
			Transactions: []ledgerTransaction{},
		})
	}

	add := func(j *models.Journal, l models.Line, amount decimal.Decimal) {
		i, ok := index[l.Account]
		if !ok {
			i = len(accounts)
			index[l.Account] = i
			accounts = append(accounts, ledgerAccount{AccountCode: l.Account, Transactions: []ledgerTransaction{}})
		}
		accounts[i].Transactions = append(accounts[i].Transactions, ledgerTransaction{
			TranDate:  j.TransDate,
			Amount:    amount,
			Reference: j.Reference,
			Memo:      l.Memo,
		})
	}

	for _, j := range journals {
		for _, l := range j.Debits {
			add(j, l, l.Amount)
		}
		for _, l := range j.Credits {
			add(j, l, l.Amount.Neg())
		}
	}

	tail := accounts[len(chart):]
	sort.SliceStable(tail, func(i, j int) bool {
		return tail[i].AccountCode < tail[j].AccountCode
	})

	return accounts
}
