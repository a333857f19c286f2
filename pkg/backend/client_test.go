package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{APIURL: server.URL + "/", AccessToken: "test-token"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCreateTransaction(t *testing.T) {
	var got TransactionPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/jurnal/transaction" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization = %q, expected bearer token", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		writeJSON(w, http.StatusCreated, Transaction{ID: 3, TransNo: 1003, Kodej: got.Kodej, Reference: got.NoRef})
	})

	payload := TransactionPayload{
		Kodej:          "JU",
		Proyek:         "PST",
		TransDate:      "2024-02-05",
		NoRef:          "JU-1",
		DebitAccounts:  []string{"1000"},
		DebitAmounts:   []string{"500000"},
		DebitMemos:     []string{""},
		CreditAccounts: []string{"2000"},
		CreditAmounts:  []string{"500000"},
		CreditMemos:    []string{"pelunasan"},
	}

	txn, err := client.CreateTransaction(context.Background(), payload)
	if err != nil {
		t.Fatalf("CreateTransaction() error: %v", err)
	}
	if txn.TransNo != 1003 || txn.Reference != "JU-1" {
		t.Errorf("CreateTransaction() = %+v", txn)
	}
	if got.CreditMemos[0] != "pelunasan" || got.DebitAmounts[0] != "500000" {
		t.Errorf("server received %+v", got)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"duplicate reference", 400, `{"error":"Reference number already exists for this type"}`, ErrDuplicateReference},
		{"duplicate reference reworded", 400, `{"error":"reference JU-1 already exists"}`, ErrDuplicateReference},
		{"validation", 400, `{"error":"Debit and credit must balance"}`, ErrInvalidInput},
		{"unprocessable", 422, `{"error":"bad"}`, ErrInvalidInput},
		{"unauthorized", 401, `{"error":"invalid token"}`, ErrUnauthorized},
		{"not found", 404, `{"error":"Journal not found"}`, ErrNotFound},
		{"server", 500, `internal error`, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.UpdateTransaction(context.Background(), 5, TransactionPayload{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("UpdateTransaction() error = %v, expected %v", err, tt.want)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error is %T, expected *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, expected %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestErrorHidesServerBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "pq: duplicate key value violates constraint"})
	})

	_, err := client.CreateTransaction(context.Background(), TransactionPayload{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, expected *APIError", err)
	}
	if apiErr.Detail != "pq: duplicate key value violates constraint" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
	if got := apiErr.Error(); got != "request rejected, check your input (status 400)" {
		t.Errorf("Error() = %q, expected the generic message", got)
	}
}

func TestConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientConfig{APIURL: url, Timeout: time.Second})
	_, err := client.ListJournals(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Errorf("ListJournals() error = %v, expected ErrConnection", err)
	}
}

func TestDeleteUsesTransNo(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, expected DELETE", r.Method)
		}
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteTransaction(context.Background(), 1042); err != nil {
		t.Fatalf("DeleteTransaction() error: %v", err)
	}
	if path != "/jurnal/transaction/1042" {
		t.Errorf("path = %q, expected /jurnal/transaction/1042", path)
	}
}

func TestGetJournalDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jurnal/detail/9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"journal": {"reference": "JU-9", "trans_date": "2024-02-05T00:00:00.000Z", "kodej": "JU", "proyek": "PST"},
			"debits": [{"account": "1000", "amount": "1500000.50", "memo": "a"}],
			"credits": [{"account": "2000", "amount": 1500000.5, "memo": ""}]
		}`))
	})

	detail, err := client.GetJournalDetail(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetJournalDetail() error: %v", err)
	}
	if detail.Journal.Reference != "JU-9" || len(detail.Debits) != 1 || len(detail.Credits) != 1 {
		t.Fatalf("GetJournalDetail() = %+v", detail)
	}
	if !detail.Debits[0].Amount.Equal(detail.Credits[0].Amount) {
		t.Errorf("amounts %s and %s should be equal", detail.Debits[0].Amount, detail.Credits[0].Amount)
	}
}

func TestFetchReferenceData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jurnal/name":
			writeJSON(w, 200, []JournalType{{Kode: "JU", Nama: "Jurnal Umum"}})
		case "/jurnal/Cabang":
			writeJSON(w, 200, []Branch{{DepCode: "PST", DepName: "Pusat"}, {DepCode: "CBG", DepName: "Cabang"}})
		case "/bank/chart":
			writeJSON(w, 200, []ChartAccount{{AccountCode: "1000", AccountName: "Kas"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ref, err := client.FetchReferenceData(context.Background())
	if err != nil {
		t.Fatalf("FetchReferenceData() error: %v", err)
	}
	if len(ref.JournalTypes) != 1 || len(ref.Branches) != 2 || len(ref.Chart) != 1 {
		t.Errorf("FetchReferenceData() = %+v", ref)
	}
}

func TestFetchLedger(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"null body", `null`, 0},
		{"signed amounts", `[{"account_code":"1000","account_name":"Kas","transactions":[{"tran_date":"2024-01-10","amount":"-300","reference":"JU-1","memo":""}]}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			accounts, err := client.FetchLedger(context.Background())
			if err != nil {
				t.Fatalf("FetchLedger() error: %v", err)
			}
			if accounts == nil || len(accounts) != tt.want {
				t.Fatalf("FetchLedger() = %#v, expected %d accounts", accounts, tt.want)
			}
			if tt.want > 0 {
				amt := accounts[0].Transactions[0].Amount
				if !amt.Valid || !amt.Decimal.Equal(decimal.NewFromInt(-300)) {
					t.Errorf("amount = %+v, expected -300", amt)
				}
			}
		})
	}
}
