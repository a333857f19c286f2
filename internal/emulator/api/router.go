package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/auth"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

// NewRouter wires every emulator endpoint. Only /health and /oauth/token
// are reachable without a bearer token. Browsers may call the API from
// allowedOrigins, or from any origin when none are given.
func NewRouter(st *store.Store, tokens *auth.TokenManager, logger *slog.Logger, allowedOrigins ...string) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	reference := NewReferenceHandler(st)
	journals := NewJournalsHandler(st, logger)
	ledger := NewLedgerHandler(st)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/oauth/token", tokens.HandleToken)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens))

		r.Get("/jurnal/name", reference.JournalTypes)
		r.Get("/jurnal/Cabang", reference.Branches)
		r.Get("/bank/chart", reference.Chart)

		r.Get("/jurnal/Table", journals.Table)
		r.Get("/jurnal/detail/{id}", journals.Detail)

		r.Post("/jurnal/transaction", journals.Create)
		r.Put("/jurnal/transaction/{id}", journals.Update)
		r.Delete("/jurnal/transaction/{transNo}", journals.Delete)

		r.Get("/bukubesar/all", ledger.All)
	})

	return r
}
