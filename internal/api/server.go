package api

import (
	"net/http"
	"time"

	"github.com/ledgerbank/bankd/internal/events"
	"github.com/ledgerbank/bankd/internal/services/bank"
)

// NewServer creates and returns a configured *http.Server for the ledger API.
func NewServer(addr string, svc *bank.Service, pub events.Publisher) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(svc, pub),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
