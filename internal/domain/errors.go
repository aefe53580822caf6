package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrOwnership indicates the entity exists but belongs to another customer.
	ErrOwnership = errors.New("ownership mismatch")
	// ErrInvalid indicates input rejected by a business rule.
	ErrInvalid = errors.New("invalid input")
)

// Error pairs one of the sentinel kinds with the message reported to clients.
// Callers branch with errors.Is against the sentinels; handlers read Msg.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NotFoundf builds a not-found Error with a formatted client message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds an already-exists Error with a formatted client message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: ErrAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

// Ownershipf builds an ownership Error. The message stays generic on purpose
// so a mismatched lookup does not reveal who owns the credit.
func Ownershipf(format string, args ...any) *Error {
	return &Error{Kind: ErrOwnership, Msg: fmt.Sprintf(format, args...)}
}

// Invalidf builds a business-rule Error with a formatted client message.
func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalid, Msg: fmt.Sprintf(format, args...)}
}
