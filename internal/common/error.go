// Package common defines shared constants and sentinel errors used across
// the foodwatch auth core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email is already in use")

	// Service-level errors. Lookup failure and a wrong password collapse
	// into the same ErrInvalidCredentials so callers cannot tell whether
	// an email is registered.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrValidation         = errors.New("validation error")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Remote backend errors.
	ErrUnavailable = errors.New("server unavailable")
)
