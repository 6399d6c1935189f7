package common

import (
	"errors"
	"strings"

	"tycoon/domain/entities"
)

// ErrNotFound is deliberately absent: an unknown item, job or animal
// reference is a data problem, surfaced generically and logged.
var sentinels = []error{
	entities.ErrInsufficientFunds,
	entities.ErrInsufficientQuantity,
	entities.ErrInvalidState,
}

// IsUserError reports whether the error stems from a rule the user ran
// into rather than a system failure.
func IsUserError(err error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// UserFacingMessage turns a domain error into a displayable sentence by
// stripping the trailing sentinel text the services wrap with.
func UserFacingMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	if msg == "" {
		return "That action isn't possible right now."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
