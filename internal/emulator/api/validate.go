package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
)

// duplicateReferenceMessage is the exact error text clients match on.
const duplicateReferenceMessage = "Reference number already exists for this type"

// toJournal validates a transaction request against the chart and the
// journal types and builds the journal to store.
func toJournal(req models.TransactionRequest, types []models.JournalType, chart []models.ChartAccount) (models.Journal, error) {
	j := models.Journal{
		Kodej:     strings.TrimSpace(req.Kodej),
		Proyek:    strings.TrimSpace(req.Proyek),
		TransDate: strings.TrimSpace(req.TransDate),
		Reference: strings.TrimSpace(req.NoRef),
	}

	switch {
	case j.Kodej == "":
		return j, errors.New("Missing kodej")
	case j.Proyek == "":
		return j, errors.New("Missing proyek")
	case j.TransDate == "":
		return j, errors.New("Missing trans_date")
	case j.Reference == "":
		return j, errors.New("Missing no_ref")
	}

	if _, err := time.Parse("2006-01-02", j.TransDate); err != nil {
		return j, fmt.Errorf("Invalid trans_date %q", j.TransDate)
	}
	if !knownType(types, j.Kodej) {
		return j, fmt.Errorf("Unknown journal type %q", j.Kodej)
	}

	known := make(map[string]bool, len(chart))
	for _, a := range chart {
		known[a.AccountCode] = true
	}

	var err error
	j.Debits, err = toLines("debit", req.DebitAccounts, req.DebitAmounts, req.DebitMemos, known)
	if err != nil {
		return j, err
	}
	j.Credits, err = toLines("credit", req.CreditAccounts, req.CreditAmounts, req.CreditMemos, known)
	if err != nil {
		return j, err
	}

	credit := decimal.Zero
	for _, l := range j.Credits {
		credit = credit.Add(l.Amount)
	}
	if !j.Total().Equal(credit) {
		return j, fmt.Errorf("Debit total %s does not equal credit total %s", j.Total(), credit)
	}

	return j, nil
}

// toLines zips the parallel arrays of one side. Memos may be omitted.
func toLines(side string, accounts, amounts, memos []string, known map[string]bool) ([]models.Line, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("At least one %s line is required", side)
	}
	if len(amounts) != len(accounts) {
		return nil, fmt.Errorf("%s_accounts and %s_amounts differ in length", side, side)
	}
	if len(memos) != 0 && len(memos) != len(accounts) {
		return nil, fmt.Errorf("%s_memos and %s_accounts differ in length", side, side)
	}

	lines := make([]models.Line, len(accounts))
	for i, code := range accounts {
		code = strings.TrimSpace(code)
		if !known[code] {
			return nil, fmt.Errorf("Unknown account %q on %s line %d", code, side, i+1)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(amounts[i]))
		if err != nil {
			return nil, fmt.Errorf("Invalid amount %q on %s line %d", amounts[i], side, i+1)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("Amount on %s line %d must be positive", side, i+1)
		}

		var memo string
		if len(memos) > 0 {
			memo = memos[i]
		}

		lines[i] = models.Line{
			ID:      uuid.NewString(),
			Account: code,
			Amount:  amount,
			Memo:    memo,
		}
	}

	return lines, nil
}

func knownType(types []models.JournalType, kode string) bool {
	for _, t := range types {
		if t.Kode == kode {
			return true
		}
	}
	return false
}
