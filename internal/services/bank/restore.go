package bank

import (
	"fmt"

	"github.com/ledgerbank/bankd/internal/ledger"
)

// Restore replays a previously captured operation sequence through the same
// validating paths as live traffic; restored state is only ever reachable
// through the normal rules, never injected directly into the store.
//
// The whole replay runs under one lock acquisition, so no query interleaves
// with a half-restored ledger. Replay aborts on the first operation the
// validating path rejects and reports its position; operations before it
// remain applied. Replaying a history captured from a consistent ledger into
// an empty one reproduces it exactly.
func (s *Service) Restore(operations []ledger.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, op := range operations {
		err := s.apply(op)
		if err != nil {
			return fmt.Errorf("restore operation %d: %w", i, err)
		}
	}

	return nil
}

func (s *Service) apply(op ledger.Operation) error {
	switch op.Kind {
	case ledger.OpCreateAccount:
		_, err := s.createAccount(op.Account)
		return err
	case ledger.OpIncrease:
		_, err := s.increase(op.Account, op.Amount)
		return err
	case ledger.OpDecrease:
		_, err := s.decrease(op.Account, op.Amount)
		return err
	case ledger.OpTransfer:
		_, err := s.transfer(op.From, op.To, op.Amount)
		return err
	default:
		return fmt.Errorf("unknown operation kind %q: %w", op.Kind, ErrInvalidOperation)
	}
}
