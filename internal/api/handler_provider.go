package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerbank/bankd/internal/events"
	"github.com/ledgerbank/bankd/internal/ledger"
	"github.com/ledgerbank/bankd/internal/services/bank"
)

// HandlerProvider wraps the bank service and exposes HTTP handlers. It
// decodes requests into engine calls and encodes typed results back; no
// ledger logic lives here.
type HandlerProvider struct {
	svc *bank.Service
	pub events.Publisher
}

// NewHandler returns a new handler provider.
func NewHandler(svc *bank.Service, pub events.Publisher) *HandlerProvider {
	return &HandlerProvider{svc: svc, pub: pub}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]errorPayload{
		"error": {Kind: kind, Message: msg},
	})
}

// writeEngineError maps an engine error to a status and a stable kind
// string. The error kind is surfaced verbatim, never collapsed into a
// generic failure.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, bank.ErrAccountExists):
		writeError(w, http.StatusConflict, "account_already_exists", err.Error())
	case errors.Is(err, bank.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, bank.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, bank.ErrTransferToSelf):
		writeError(w, http.StatusBadRequest, "transfer_to_self", err.Error())
	case errors.Is(err, bank.ErrInvalidOperation):
		writeError(w, http.StatusBadRequest, "invalid_operation", err.Error())
	default:
		slog.Error("unexpected engine error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func accountFromPath(r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	return name, name != ""
}

// decodeBody decodes a size-capped JSON body, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request", "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return false
	}

	return true
}

// publish announces an applied operation. Best-effort: a publish failure is
// logged and never surfaced to the caller.
func (h *HandlerProvider) publish(ctx context.Context, id ledger.OperationID, op ledger.Operation) {
	err := h.pub.Publish(ctx, events.NewOperationApplied(id, op))
	if err != nil {
		slog.Warn("failed to publish operation event", "operation_id", id, "error", err)
	}
}

// --- Handlers ---

type createAccountRequest struct {
	Name string `json:"name"`
}

// CreateAccountHandler handles POST /accounts.
func (h *HandlerProvider) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}

	id, err := h.svc.CreateAccount(req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.publish(r.Context(), id, ledger.CreateAccount(req.Name))
	writeJSON(w, http.StatusCreated, map[string]any{
		"account":     req.Name,
		"operationId": id,
	})
}

// GetBalanceHandler handles GET /accounts/{name}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := accountFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "missing account name")
		return
	}

	balance, err := h.svc.GetBalance(name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account": name,
		"balance": balance,
	})
}

// GetAccountHistoryHandler handles GET /accounts/{name}/history.
func (h *HandlerProvider) GetAccountHistoryHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := accountFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "missing account name")
		return
	}

	ops, err := h.svc.GetAccountHistory(name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ops)
}

type amountRequest struct {
	Amount uint64 `json:"amount"`
}

// DepositHandler handles POST /accounts/{name}/deposit.
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := accountFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "missing account name")
		return
	}

	var req amountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.svc.Increase(name, req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.publish(r.Context(), id, ledger.Increase(name, req.Amount))
	writeJSON(w, http.StatusOK, map[string]any{"operationId": id})
}

// WithdrawHandler handles POST /accounts/{name}/withdraw.
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := accountFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "missing account name")
		return
	}

	var req amountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.svc.Decrease(name, req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.publish(r.Context(), id, ledger.Decrease(name, req.Amount))
	writeJSON(w, http.StatusOK, map[string]any{"operationId": id})
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// TransferHandler handles POST /transfers.
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.From == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "from and to required")
		return
	}

	id, err := h.svc.Transfer(req.From, req.To, req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.publish(r.Context(), id, ledger.Transfer(req.From, req.To, req.Amount))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetHistoryHandler handles GET /history.
func (h *HandlerProvider) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetHistory())
}

type restoreRequest struct {
	Operations []ledger.Operation `json:"operations"`
}

// RestoreHandler handles POST /restore. Replayed operations are not
// re-published to the event stream.
func (h *HandlerProvider) RestoreHandler(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.svc.Restore(req.Operations)
	if err != nil {
		if errors.Is(err, bank.ErrInvalidOperation) {
			writeEngineError(w, err)
			return
		}

		// A rejected replay step means the submitted history diverges from
		// any state reachable through the validating path.
		writeError(w, http.StatusConflict, "restore_rejected", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applied": len(req.Operations)})
}
