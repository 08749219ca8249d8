package bank

import "errors"

var (
	ErrAccountExists     = errors.New("account already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferToSelf    = errors.New("transfer to self")

	// ErrInvalidOperation marks a restore entry whose kind is not one of the
	// four operation kinds, e.g. a corrupted or hand-edited history.
	ErrInvalidOperation = errors.New("invalid operation")
)
