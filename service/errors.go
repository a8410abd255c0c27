package service

import "errors"

var (
	// ErrAccountNotFound is returned when no account carries the requested number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount is returned for non-numeric, zero or negative amounts.
	ErrInvalidAmount = errors.New("invalid amount (must be > 0)")

	// ErrInsufficientFunds is returned when a debit would make the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrIncorrectPIN is returned when the PIN does not match the account.
	ErrIncorrectPIN = errors.New("incorrect pin")

	// ErrBlankName is returned when an account name is empty after trimming.
	ErrBlankName = errors.New("account name is blank")

	// ErrSameAccount is returned for a transfer whose sender is also the recipient.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrNumberSpaceExhausted is returned when no free account number could be drawn.
	ErrNumberSpaceExhausted = errors.New("cannot generate a unique account number")

	// ErrCorruptStore is returned when the store file exists but cannot be decoded.
	ErrCorruptStore = errors.New("account store is corrupt")
)
