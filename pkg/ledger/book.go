package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

// FromBook flattens GET /bukubesar/all into one signed posting stream in
// arrival order. A transaction's signed amount is used when present,
// otherwise debit minus credit. Transactions whose date cannot be parsed
// are skipped with a warning.
func (a *Aggregator) FromBook(book []backend.LedgerAccount) []posting.Posting {
	var out []posting.Posting
	skipped := 0

	for _, acct := range book {
		for _, t := range acct.Transactions {
			date, ok := posting.ParseDate(t.TranDate, a.loc)
			if !ok {
				skipped++
				a.logger.Warn("Skipping ledger transaction with invalid date",
					"account", acct.AccountCode, "reference", t.Reference, "date", t.TranDate)
				continue
			}

			out = append(out, posting.Posting{
				AccountCode: acct.AccountCode,
				AccountName: acct.AccountName,
				Date:        date,
				Reference:   t.Reference,
				Memo:        t.Memo,
				Amount:      signedAmount(t),
			})
		}
	}

	if skipped > 0 {
		a.logger.Info("Normalized general ledger", "postings", len(out), "skipped", skipped)
	}

	return out
}

func signedAmount(t backend.LedgerTransaction) decimal.Decimal {
	if t.Amount.Valid {
		return t.Amount.Decimal
	}
	debit, credit := decimal.Zero, decimal.Zero
	if t.Debit.Valid {
		debit = t.Debit.Decimal
	}
	if t.Credit.Valid {
		credit = t.Credit.Decimal
	}
	return posting.Normalize(debit, credit)
}
