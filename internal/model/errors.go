package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrUserNotFound    = errors.New("user not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionNotFound = errors.New("session not found")

	// Authentication errors. Deliberately a single error so callers can't
	// tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
