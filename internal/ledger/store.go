// Package ledger holds the in-memory ledger state: account balances, the
// append-only operation history and the per-account index into it.
//
// The Store exposes non-validating primitives only. Callers (the bank
// service) are expected to have checked every precondition before writing;
// primitives therefore never fail. Presence of a key in the balance map is
// what makes an account exist, there is no separate account set.
package ledger

// Store is not safe for concurrent use. The owning service serializes access.
type Store struct {
	balances map[string]uint64
	history  []Operation
	index    map[string][]OperationID
}

// NewStore returns an empty ledger: no accounts, empty history.
func NewStore() *Store {
	return &Store{
		balances: make(map[string]uint64),
		index:    make(map[string][]OperationID),
	}
}

// Has reports whether the account exists.
func (s *Store) Has(account string) bool {
	_, ok := s.balances[account]
	return ok
}

// Balance returns the account's balance, 0 if the account does not exist.
func (s *Store) Balance(account string) uint64 {
	return s.balances[account]
}

// AddAccount registers a new account with a zero balance.
func (s *Store) AddAccount(account string) {
	s.balances[account] = 0
}

// SetBalance overwrites the account's balance.
func (s *Store) SetBalance(account string, balance uint64) {
	s.balances[account] = balance
}

// AppendHistory appends op to the global history and returns its position.
func (s *Store) AppendHistory(op Operation) OperationID {
	s.history = append(s.history, op)
	return len(s.history) - 1
}

// IndexOperation records that account participated in the operation at id.
// A transfer is indexed under both sides with the same id.
func (s *Store) IndexOperation(account string, id OperationID) {
	s.index[account] = append(s.index[account], id)
}

// History returns a copy of the full history in append order.
func (s *Store) History() []Operation {
	out := make([]Operation, len(s.history))
	copy(out, s.history)
	return out
}

// AccountOperations resolves the account's index into operations, in the
// order they occurred. ok is false when the account has no index entry at
// all, i.e. it was never created.
func (s *Store) AccountOperations(account string) ([]Operation, bool) {
	ids, ok := s.index[account]
	if !ok {
		return nil, false
	}

	out := make([]Operation, len(ids))
	for i, id := range ids {
		out[i] = s.history[id]
	}

	return out, true
}
