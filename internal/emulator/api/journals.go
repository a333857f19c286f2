package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

// JournalsHandler handles journal endpoints.
type JournalsHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewJournalsHandler creates a new JournalsHandler.
func NewJournalsHandler(s *store.Store, logger *slog.Logger) *JournalsHandler {
	return &JournalsHandler{store: s, logger: logger}
}

type transactionResponse struct {
	ID        int64  `json:"id"`
	TransNo   int64  `json:"trans_no"`
	Kodej     string `json:"kodej"`
	Proyek    string `json:"proyek"`
	TransDate string `json:"trans_date"`
	Reference string `json:"reference"`
}

func newTransactionResponse(j *models.Journal) transactionResponse {
	return transactionResponse{
		ID:        j.ID,
		TransNo:   j.TransNo,
		Kodej:     j.Kodej,
		Proyek:    j.Proyek,
		TransDate: j.TransDate,
		Reference: j.Reference,
	}
}

type detailResponse struct {
	Journal struct {
		ID        int64  `json:"id"`
		TransNo   int64  `json:"trans_no"`
		Reference string `json:"reference"`
		TransDate string `json:"trans_date"`
		Kodej     string `json:"kodej"`
		Proyek    string `json:"proyek"`
	} `json:"journal"`
	Debits  []models.Line `json:"debits"`
	Credits []models.Line `json:"credits"`
}

type tableRow struct {
	ID        int64           `json:"id"`
	TransNo   int64           `json:"trans_no"`
	Reference string          `json:"reference"`
	TranDate  string          `json:"tran_date"`
	Kodej     string          `json:"kodej"`
	Proyek    string          `json:"proyek"`
	Amount    decimal.Decimal `json:"amount"`
}

// Table handles GET /jurnal/Table.
func (h *JournalsHandler) Table(w http.ResponseWriter, r *http.Request) {
	journals, err := h.store.ListJournals()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list journals")
		return
	}

	rows := make([]tableRow, 0, len(journals))
	for _, j := range journals {
		rows = append(rows, tableRow{
			ID:        j.ID,
			TransNo:   j.TransNo,
			Reference: j.Reference,
			TranDate:  j.TransDate,
			Kodej:     j.Kodej,
			Proyek:    j.Proyek,
			Amount:    j.Total(),
		})
	}

	writeJSON(w, http.StatusOK, rows)
}

// Detail handles GET /jurnal/detail/{id}.
func (h *JournalsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "Invalid journal ID")
	if !ok {
		return
	}

	j, err := h.store.GetJournal(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Journal not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to get journal")
		return
	}

	var resp detailResponse
	resp.Journal.ID = j.ID
	resp.Journal.TransNo = j.TransNo
	resp.Journal.Reference = j.Reference
	resp.Journal.TransDate = j.TransDate
	resp.Journal.Kodej = j.Kodej
	resp.Journal.Proyek = j.Proyek
	resp.Debits = j.Debits
	resp.Credits = j.Credits

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /jurnal/transaction.
func (h *JournalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	j, ok := h.decode(w, r)
	if !ok {
		return
	}

	created, err := h.store.CreateJournal(j)
	if err != nil {
		h.writeStoreError(w, err, "Failed to create journal")
		return
	}

	h.logger.Info("journal created", "id", created.ID, "trans_no", created.TransNo, "reference", created.Reference)
	writeJSON(w, http.StatusCreated, newTransactionResponse(created))
}

// Update handles PUT /jurnal/transaction/{id}.
func (h *JournalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "Invalid journal ID")
	if !ok {
		return
	}

	j, ok := h.decode(w, r)
	if !ok {
		return
	}

	updated, err := h.store.UpdateJournal(id, j)
	if err != nil {
		h.writeStoreError(w, err, "Failed to update journal")
		return
	}

	h.logger.Info("journal updated", "id", updated.ID, "trans_no", updated.TransNo)
	writeJSON(w, http.StatusOK, newTransactionResponse(updated))
}

// Delete handles DELETE /jurnal/transaction/{transNo}.
func (h *JournalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	transNo, ok := pathInt(w, r, "transNo", "Invalid transaction number")
	if !ok {
		return
	}

	if err := h.store.DeleteByTransNo(transNo); err != nil {
		h.writeStoreError(w, err, "Failed to delete journal")
		return
	}

	h.logger.Info("journal deleted", "trans_no", transNo)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Journal deleted"})
}

func (h *JournalsHandler) decode(w http.ResponseWriter, r *http.Request) (models.Journal, bool) {
	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return models.Journal{}, false
	}

	types, err := h.store.JournalTypes()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load journal types")
		return models.Journal{}, false
	}
	chart, err := h.store.Chart()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load chart of accounts")
		return models.Journal{}, false
	}

	j, err := toJournal(req, types, chart)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return models.Journal{}, false
	}
	return j, true
}

func (h *JournalsHandler) writeStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrDuplicateReference):
		writeJSONError(w, http.StatusBadRequest, duplicateReferenceMessage)
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Journal not found")
	default:
		h.logger.Error(fallback, "error", err)
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}

func pathInt(w http.ResponseWriter, r *http.Request, name, message string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return v, true
}
