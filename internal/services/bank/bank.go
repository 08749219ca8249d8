// Package bank implements the ledger engine: validated, atomic operations
// over an in-memory ledger.Store. Every operation either fully applies
// (balances, history and index updated together) or fully rejects with one of
// the package sentinel errors, leaving the store untouched.
package bank

import (
	"fmt"
	"math"
	"sync"

	"github.com/ledgerbank/bankd/internal/ledger"
)

// Service owns a ledger store. A single mutex serializes all operations,
// queries included, so no caller can observe a partially applied mutation.
type Service struct {
	mu    sync.Mutex
	store *ledger.Store
}

// New returns a service over a fresh, empty ledger.
func New() *Service {
	return &Service{store: ledger.NewStore()}
}

// CreateAccount adds a new account with a zero balance and records the
// creation in history.
func (s *Service) CreateAccount(name string) (ledger.OperationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createAccount(name)
}

// Increase credits amount to the account's balance.
func (s *Service) Increase(account string, amount uint64) (ledger.OperationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.increase(account, amount)
}

// Decrease debits amount from the account's balance.
func (s *Service) Decrease(account string, amount uint64) (ledger.OperationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.decrease(account, amount)
}

// Transfer moves amount between two distinct accounts as one history event
// indexed under both participants. The self-transfer check runs before the
// existence checks.
func (s *Service) Transfer(from, to string, amount uint64) (ledger.OperationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transfer(from, to, amount)
}

// GetBalance returns the account's current balance.
func (s *Service) GetBalance(account string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Has(account) {
		return 0, fmt.Errorf("get balance %q: %w", account, ErrAccountNotFound)
	}

	return s.store.Balance(account), nil
}

// GetHistory returns a snapshot of the full history in append order.
func (s *Service) GetHistory() []ledger.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.History()
}

// GetAccountHistory returns the operations the account participated in, in
// chronological order. An account that was never created yields
// ErrAccountNotFound; an account whose only event is its own creation yields
// a one-element slice.
func (s *Service) GetAccountHistory(account string) ([]ledger.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, ok := s.store.AccountOperations(account)
	if !ok {
		return nil, fmt.Errorf("account history %q: %w", account, ErrAccountNotFound)
	}

	return ops, nil
}

// The unexported variants assume s.mu is already held; Restore replays
// through them under a single lock acquisition.

func (s *Service) createAccount(name string) (ledger.OperationID, error) {
	if s.store.Has(name) {
		return 0, fmt.Errorf("create account %q: %w", name, ErrAccountExists)
	}

	s.store.AddAccount(name)
	id := s.store.AppendHistory(ledger.CreateAccount(name))
	s.store.IndexOperation(name, id)

	return id, nil
}

func (s *Service) increase(account string, amount uint64) (ledger.OperationID, error) {
	err := s.checkAccount(account)
	if err != nil {
		return 0, fmt.Errorf("increase: %w", err)
	}

	err = s.checkAmount(amount)
	if err != nil {
		return 0, fmt.Errorf("increase: %w", err)
	}

	balance := s.store.Balance(account)
	if balance > math.MaxUint64-amount {
		return 0, fmt.Errorf("increase %q: balance overflow: %w", account, ErrInvalidAmount)
	}

	s.store.SetBalance(account, balance+amount)
	id := s.store.AppendHistory(ledger.Increase(account, amount))
	s.store.IndexOperation(account, id)

	return id, nil
}

func (s *Service) decrease(account string, amount uint64) (ledger.OperationID, error) {
	err := s.checkAccount(account)
	if err != nil {
		return 0, fmt.Errorf("decrease: %w", err)
	}

	err = s.checkAmount(amount)
	if err != nil {
		return 0, fmt.Errorf("decrease: %w", err)
	}

	balance := s.store.Balance(account)
	if balance < amount {
		return 0, fmt.Errorf("decrease %q by %d: %w", account, amount, ErrInsufficientFunds)
	}

	s.store.SetBalance(account, balance-amount)
	id := s.store.AppendHistory(ledger.Decrease(account, amount))
	s.store.IndexOperation(account, id)

	return id, nil
}

func (s *Service) transfer(from, to string, amount uint64) (ledger.OperationID, error) {
	if from == to {
		return 0, fmt.Errorf("transfer %q to itself: %w", from, ErrTransferToSelf)
	}

	err := s.checkAccount(from)
	if err != nil {
		return 0, fmt.Errorf("transfer: %w", err)
	}

	err = s.checkAccount(to)
	if err != nil {
		return 0, fmt.Errorf("transfer: %w", err)
	}

	err = s.checkAmount(amount)
	if err != nil {
		return 0, fmt.Errorf("transfer: %w", err)
	}

	fromBalance := s.store.Balance(from)
	if fromBalance < amount {
		return 0, fmt.Errorf("transfer %d from %q: %w", amount, from, ErrInsufficientFunds)
	}

	toBalance := s.store.Balance(to)
	if toBalance > math.MaxUint64-amount {
		return 0, fmt.Errorf("transfer to %q: balance overflow: %w", to, ErrInvalidAmount)
	}

	// All checks passed; no intermediate debited-but-not-credited state is
	// observable because the mutex is held across both writes.
	s.store.SetBalance(from, fromBalance-amount)
	s.store.SetBalance(to, toBalance+amount)

	id := s.store.AppendHistory(ledger.Transfer(from, to, amount))
	s.store.IndexOperation(from, id)
	s.store.IndexOperation(to, id)

	return id, nil
}

func (s *Service) checkAccount(account string) error {
	if !s.store.Has(account) {
		return fmt.Errorf("account %q: %w", account, ErrAccountNotFound)
	}

	return nil
}

func (s *Service) checkAmount(amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidAmount)
	}

	return nil
}
