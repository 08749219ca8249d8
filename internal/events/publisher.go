// Package events defines the operation-applied event published after each
// successful live mutation. Publishing is best-effort and never affects
// ledger state.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbank/bankd/internal/ledger"
)

// OperationApplied announces one applied ledger operation to downstream
// consumers. Restored history is not re-announced.
type OperationApplied struct {
	EventID     string             `json:"event_id"`
	OperationID ledger.OperationID `json:"operation_id"`
	Operation   ledger.Operation   `json:"operation"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NewOperationApplied stamps the event with a fresh ID and the current time.
func NewOperationApplied(id ledger.OperationID, op ledger.Operation) OperationApplied {
	return OperationApplied{
		EventID:     uuid.New().String(),
		OperationID: id,
		Operation:   op,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OperationApplied) error
}

// Noop discards events; used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, OperationApplied) error { return nil }
