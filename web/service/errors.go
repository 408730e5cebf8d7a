package service

import (
	"errors"
	"strings"
)

// Domain errors surfaced to controllers. Storage-level integrity
// violations are translated into these, never propagated raw.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateTitle    = errors.New("post title already exists")
	ErrUnknownEmail      = errors.New("unknown email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrNotFound          = errors.New("record not found")
)

// translateUniqueViolation maps a sqlite unique-constraint failure on the
// given column to a domain error. Pre-insert checks catch most
// duplicates; this catches the race where two requests insert the same
// value concurrently.
func translateUniqueViolation(err error, column string, domainErr error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column) {
		return domainErr
	}
	return err
}
