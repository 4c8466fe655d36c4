// Package common defines the sentinel errors shared by the service,
// repository and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth domain errors.
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")

	// Order domain errors.
	ErrProductNotFound = errors.New("product not found")

	// Token errors (invalid signature, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
