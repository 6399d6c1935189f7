package entities

import "errors"

// Sentinel errors returned by the economy core. Handlers branch on these
// with errors.Is; anything else is treated as a system failure.
var (
	// ErrInsufficientFunds is returned when a balance adjustment would
	// take a monetary field below zero. The balance is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientQuantity is returned when an inventory removal asks
	// for more than the stack holds. The stack is left unchanged.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrNotFound is returned for unknown catalog references (items,
	// jobs, animals). This indicates a configuration or data problem,
	// not user error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned for user actions that are well-formed
	// but not applicable right now: harvesting an unripe plot, feeding
	// an animal already at full energy, working while arrested.
	ErrInvalidState = errors.New("invalid state")
)
