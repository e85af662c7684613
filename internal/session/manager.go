// Package session holds the process-wide authentication state consumed by
// the UI layer: the current user, a loading flag for startup restoration,
// and login/signup/logout operations delegating to the auth service.
//
// The Manager is an explicitly constructed object injected into its
// consumers; nothing here is an ambient singleton.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/agsavn/foodwatch/internal/auth"
	"github.com/agsavn/foodwatch/internal/logging"
	"github.com/agsavn/foodwatch/internal/user"
)

const genericFailure = "an unexpected error occurred, please try again"

// Manager is the session state machine. It never returns errors to its
// consumers: failures become AuthResult messages (or a cleared session) and
// diagnostics go to the logger.
//
// Operations serialize on an internal mutex, but a Login started before a
// Logout still installs its result if it completes afterwards; in-flight
// calls are not cancelled by later ones.
type Manager struct {
	mu      sync.Mutex
	svc     auth.Service
	tokens  *TokenKeeper
	log     logging.Logger
	user    *user.User
	loading bool
}

func NewManager(svc auth.Service, tokens *TokenKeeper, log logging.Logger) *Manager {
	return &Manager{
		svc:     svc,
		tokens:  tokens,
		log:     log,
		loading: true,
	}
}

// Init restores the session from the persisted token, if any. Every path —
// no token, invalid token, verification failure — ends with loading=false so
// consumers can render.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	tok, err := m.tokens.Get(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read persisted token", "error", err)
		return
	}
	if tok == "" {
		return
	}

	check, err := m.svc.VerifyToken(ctx, tok)
	if err != nil {
		m.log.Error(ctx, "token verification failed", "error", err)
		m.clearLocked(ctx)
		return
	}

	if !check.Valid {
		m.log.Info(ctx, "persisted token invalid, clearing session")
		m.clearLocked(ctx)
		return
	}

	m.user = check.User
	m.log.Info(ctx, "session restored", "email", check.User.Email)
}

// Login delegates to the auth service and, on success, persists the token
// and installs the user. On failure the session state is unchanged and the
// result carries the message to show.
func (m *Manager) Login(ctx context.Context, data auth.LoginData) *auth.AuthResult {
	res, err := m.svc.Login(ctx, data)
	if err != nil {
		m.log.Error(ctx, "login failed", "email", data.Email, "error", err)
		return &auth.AuthResult{Success: false, Message: genericFailure}
	}

	if res.Success {
		m.install(ctx, res)
	}
	return res
}

// Signup has the same persistence contract as Login.
func (m *Manager) Signup(ctx context.Context, data auth.SignupData) *auth.AuthResult {
	res, err := m.svc.Signup(ctx, data)
	if err != nil {
		m.log.Error(ctx, "signup failed", "email", data.Email, "error", err)
		return &auth.AuthResult{Success: false, Message: genericFailure}
	}

	if res.Success {
		m.install(ctx, res)
	}
	return res
}

// Logout clears the persisted token and the in-memory user. Purely
// client-side: the token itself stays valid until it expires, since there is
// no revocation list.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked(ctx)
	m.log.Info(ctx, "logged out")
}

// User returns the authenticated user (sanitized) or nil.
func (m *Manager) User() *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated derives from the presence of a user.
func (m *Manager) IsAuthenticated() bool {
	return m.User() != nil
}

// Loading reports whether Init has not yet completed.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Cookie exposes the derived cookie form of the current token.
func (m *Manager) Cookie(ctx context.Context) (*http.Cookie, error) {
	return m.tokens.Cookie(ctx)
}

func (m *Manager) install(ctx context.Context, res *auth.AuthResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Set(ctx, res.Token); err != nil {
		// session still usable for this run; it just won't survive a restart
		m.log.Error(ctx, "failed to persist token", "error", err)
	}
	m.user = res.User
}

func (m *Manager) clearLocked(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear persisted token", "error", err)
	}
	m.user = nil
}
