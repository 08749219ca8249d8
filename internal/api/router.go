package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerbank/bankd/internal/events"
	"github.com/ledgerbank/bankd/internal/services/bank"
)

// NewRouter registers every ledger endpoint. One request maps to exactly one
// engine operation; Restore is the single call that fans out internally.
func NewRouter(svc *bank.Service, pub events.Publisher) http.Handler {
	h := NewHandler(svc, pub)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/accounts", h.CreateAccountHandler)
	r.Get("/accounts/{name}/balance", h.GetBalanceHandler)
	r.Get("/accounts/{name}/history", h.GetAccountHistoryHandler)
	r.Post("/accounts/{name}/deposit", h.DepositHandler)
	r.Post("/accounts/{name}/withdraw", h.WithdrawHandler)
	r.Post("/transfers", h.TransferHandler)
	r.Get("/history", h.GetHistoryHandler)
	r.Post("/restore", h.RestoreHandler)

	return r
}
