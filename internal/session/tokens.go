package session

import (
	"context"
	"net/http"
	"time"

	"github.com/agsavn/foodwatch/internal/kv"
	"github.com/agsavn/foodwatch/internal/token"
)

// tokenKey is the single authoritative entry holding the session token.
const tokenKey = "auth_token"

// TokenKeeper persists the session token. The durable kv entry is the only
// write path; the cookie form is a derived read (Cookie) so there is no
// second store to keep in sync.
type TokenKeeper struct {
	repo kv.Repository
}

func NewTokenKeeper(repo kv.Repository) *TokenKeeper {
	return &TokenKeeper{repo: repo}
}

// Get returns the stored token, or "" when none is stored.
func (k *TokenKeeper) Get(ctx context.Context) (string, error) {
	v, err := k.repo.Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (k *TokenKeeper) Set(ctx context.Context, tok string) error {
	return k.repo.Set(ctx, tokenKey, []byte(tok))
}

func (k *TokenKeeper) Clear(ctx context.Context) error {
	return k.repo.Delete(ctx, tokenKey)
}

// Cookie renders the current token state as a cookie for any collaborator
// that needs cookie-based visibility (e.g. a server-rendered shell). With a
// token present, Max-Age is its remaining lifetime; with none, the cookie
// expires immediately. Secure and HttpOnly are not set.
func (k *TokenKeeper) Cookie(ctx context.Context) (*http.Cookie, error) {
	tok, err := k.Get(ctx)
	if err != nil {
		return nil, err
	}

	c := &http.Cookie{
		Name:     tokenKey,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}

	if tok == "" {
		c.MaxAge = -1
		return c, nil
	}

	c.Value = tok
	c.MaxAge = int(token.Validity / time.Second)
	if claims, err := token.Parse(tok); err == nil {
		// demo tokens carry their expiry; remote tokens are opaque and
		// keep the default lifetime
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			c.MaxAge = int(remaining / time.Second)
		}
	}
	return c, nil
}
