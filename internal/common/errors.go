// Package common defines shared constants and sentinel errors used across
// the client and server layers of NutriScan. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrorStorage      = errors.New("storage error")

	// Asset store (S3) failures.
	ErrorUpstream = errors.New("upstream error")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")
)
