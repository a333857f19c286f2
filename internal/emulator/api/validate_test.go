package api

import (
	"strings"
	"testing"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

func validRequest() models.TransactionRequest {
	return models.TransactionRequest{
		Kodej:          "JU",
		Proyek:         "PST",
		TransDate:      "2024-02-05",
		NoRef:          "JU-1",
		DebitAccounts:  []string{"1101"},
		DebitAmounts:   []string{"500000"},
		DebitMemos:     []string{"Setoran"},
		CreditAccounts: []string{"2101", "3101"},
		CreditAmounts:  []string{"200000.50", "299999.5"},
	}
}

func TestToJournal(t *testing.T) {
	seed := store.DefaultSeed()

	tests := []struct {
		name    string
		mutate  func(*models.TransactionRequest)
		wantErr string
	}{
		{"valid", func(*models.TransactionRequest) {}, ""},
		{"missing kodej", func(r *models.TransactionRequest) { r.Kodej = " " }, "Missing kodej"},
		{"missing reference", func(r *models.TransactionRequest) { r.NoRef = "" }, "Missing no_ref"},
		{"bad date", func(r *models.TransactionRequest) { r.TransDate = "05/02/2024" }, "Invalid trans_date"},
		{"unknown type", func(r *models.TransactionRequest) { r.Kodej = "XX" }, "Unknown journal type"},
		{"unknown account", func(r *models.TransactionRequest) { r.DebitAccounts = []string{"9999"} }, "Unknown account"},
		{"no credit lines", func(r *models.TransactionRequest) { r.CreditAccounts, r.CreditAmounts = nil, nil }, "At least one credit line"},
		{"ragged arrays", func(r *models.TransactionRequest) { r.CreditAmounts = r.CreditAmounts[:1] }, "differ in length"},
		{"zero amount", func(r *models.TransactionRequest) { r.DebitAmounts = []string{"0"} }, "must be positive"},
		{"locale amount", func(r *models.TransactionRequest) { r.DebitAmounts = []string{"500.000,00"} }, "Invalid amount"},
		{"unbalanced", func(r *models.TransactionRequest) { r.DebitAmounts = []string{"500001"} }, "does not equal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			j, err := toJournal(req, seed.JournalTypes, seed.Chart)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("toJournal() error: %v", err)
				}
				if len(j.Debits) != 1 || len(j.Credits) != 2 || j.Debits[0].Memo != "Setoran" || j.Credits[0].Memo != "" {
					t.Errorf("toJournal() = %+v", j)
				}
				if j.Debits[0].ID == "" || j.Debits[0].ID == j.Credits[0].ID {
					t.Error("lines need distinct ids")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("toJournal() error = %v, expected %q", err, tt.wantErr)
			}
		})
	}
}
