// Package auth implements the signup/login/verify-token operations behind
// one interface with two backends: a local user store (demo mode) and the
// remote dashboard API.
package auth

import (
	"context"

	"github.com/agsavn/foodwatch/internal/user"
)

type SignupData struct {
	Name     string
	Email    string
	Password string
	Role     user.Role
}

type LoginData struct {
	Email    string
	Password string
}

// AuthResult is the outcome of a signup or login attempt. Business failures
// (bad credentials, duplicate email, weak password, inactive account) are not
// errors: they come back as Success=false with a user-facing Message. User is
// always sanitized.
type AuthResult struct {
	Success bool
	Message string
	User    *user.User
	Token   string
}

// TokenCheck is the outcome of verifying a persisted token. Invalid covers
// decode failures, expiry, and a user that no longer resolves; the caller
// gets no distinction beyond Valid=false.
type TokenCheck struct {
	Valid bool
	User  *user.User
}

// Service is the surface the session manager consumes. Implementations must
// never panic for control flow; infrastructure failures are returned as
// errors, everything the end user can cause is an AuthResult.
type Service interface {
	Signup(ctx context.Context, data SignupData) (*AuthResult, error)
	Login(ctx context.Context, data LoginData) (*AuthResult, error)
	VerifyToken(ctx context.Context, tok string) (*TokenCheck, error)
}

func failure(message string) *AuthResult {
	return &AuthResult{Success: false, Message: message}
}
