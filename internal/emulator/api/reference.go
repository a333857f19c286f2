package api

import (
	"net/http"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

// ReferenceHandler serves the option lists of the journal form.
type ReferenceHandler struct {
	store *store.Store
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(s *store.Store) *ReferenceHandler {
	return &ReferenceHandler{store: s}
}

// JournalTypes handles GET /jurnal/name.
func (h *ReferenceHandler) JournalTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.JournalTypes()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list journal types")
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// Branches handles GET /jurnal/Cabang.
func (h *ReferenceHandler) Branches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.store.Branches()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list branches")
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

// Chart handles GET /bank/chart.
func (h *ReferenceHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.store.Chart()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list chart of accounts")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}
