// Package common defines shared constants and sentinel errors used across
// the client, the local store, and the fallback server. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Registration/reminder duplicates are rejected at the API layer; the
	// local store itself stays idempotent.
	ErrAlreadyRegistered = errors.New("already registered")
	ErrReminderExists    = errors.New("reminder already set")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation errors.
	ErrValidation = errors.New("validation error")
)
