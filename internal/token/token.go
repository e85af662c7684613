// Package token encodes and decodes the demo session token: a bundle of
// {id, email, role, exp} serialized as an unsigned JWT (alg "none").
//
// The token is deliberately NOT signed — anyone holding the encoding scheme
// can forge one. Demo mode never assumes server-side trust in it; the token
// exists so a session can be restored across restarts and expire on its own.
package token

import (
	"errors"
	"time"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Validity is the fixed, absolute token lifetime. Not sliding: re-login is
// required after expiry.
const Validity = 24 * time.Hour

// Claims carries the token payload. ID shadows the registered "jti" claim
// with the user id.
type Claims struct {
	jwt.RegisteredClaims
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Generate encodes {id, email, role} with exp = now + validity.
func Generate(id, email, role string, validity time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		ID:    id,
		Email: email,
		Role:  role,
	})

	return t.SignedString(jwt.UnsafeAllowNoneSignatureType)
}

// Parse decodes tokenString and validates its expiry. It returns
// common.ErrTokenExpired for an expired token and common.ErrInvalidToken
// for anything else that fails to decode.
func Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwt.UnsafeAllowNoneSignatureType, nil
	}, jwt.WithValidMethods([]string{"none"}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !t.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
