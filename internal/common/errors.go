// Package common defines sentinel errors and small helpers shared by the
// console, its services and the storage layer. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Password-reset grant errors.
	ErrInvalidToken = errors.New("invalid token")
)
