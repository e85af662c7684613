// Package password implements password encoding and strength validation for
// the demo user store.
//
// The default codec is NOT a real cryptographic hash: it is a deterministic,
// reversible encoding of plaintext plus a fixed salt, kept bit-compatible
// with the stored demo accounts. Deployments backed by a real database should
// construct the store with Argon2Hasher instead.
package password

import (
	"encoding/base64"
	"unicode"

	"github.com/agsavn/foodwatch/internal/common"
)

// demoSalt is static and shared by every account. Known weakness of the demo
// codec, documented rather than fixed.
const demoSalt = "salt_for_demo_only"

// Hash returns the demo encoding of plaintext. Same input always yields the
// same output.
func Hash(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext + demoSalt))
}

// Verify recomputes the demo encoding and compares it with hash.
func Verify(plaintext, hash string) bool {
	return Hash(plaintext) == hash
}

// StrengthError reports a failed policy check. Its message is user-facing
// and propagated verbatim by the auth service. Matches common.ErrValidation
// under errors.Is.
type StrengthError struct {
	Message string
}

func (e *StrengthError) Error() string { return e.Message }

func (e *StrengthError) Is(target error) bool { return target == common.ErrValidation }

// ValidateStrength checks the password policy. Checks run in a fixed order
// and the first failure wins: length, uppercase, lowercase, digit.
func ValidateStrength(plaintext string) error {
	if len(plaintext) < 8 {
		return &StrengthError{Message: "password must be at least 8 characters long"}
	}
	if !containsFunc(plaintext, unicode.IsUpper) {
		return &StrengthError{Message: "password must contain at least one uppercase letter"}
	}
	if !containsFunc(plaintext, unicode.IsLower) {
		return &StrengthError{Message: "password must contain at least one lowercase letter"}
	}
	if !containsFunc(plaintext, unicode.IsDigit) {
		return &StrengthError{Message: "password must contain at least one digit"}
	}
	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
