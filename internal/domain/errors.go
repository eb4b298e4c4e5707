package domain

import "errors"

var (
	// Lookup errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrTransactionLogNotFound = errors.New("transaction has no log")

	// Transfer errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")

	// ErrTransferFailed wraps any failure inside the transfer boundary. The
	// original cause stays reachable through errors.Is/As.
	ErrTransferFailed = errors.New("transfer failed")
)
