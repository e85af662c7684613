package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/agsavn/foodwatch/internal/apiclient"
	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/logging"
	"github.com/agsavn/foodwatch/internal/user"
)

// Backend is the slice of the API client the remote service needs. Satisfied
// by *apiclient.Client.
type Backend interface {
	Register(ctx context.Context, name, email, pass string, role user.Role) (*user.User, string, error)
	Login(ctx context.Context, email, pass string) (*user.User, string, error)
	Verify(ctx context.Context, tok string) error
	Me(ctx context.Context, tok string) (*user.User, error)
}

// RemoteService delegates every operation to the external API, which is the
// system of record outside demo mode. Tokens are opaque server-issued
// strings; this service stores and forwards them without inspecting them.
type RemoteService struct {
	backend Backend
	log     logging.Logger
}

func NewRemoteService(backend Backend, log logging.Logger) *RemoteService {
	return &RemoteService{backend: backend, log: log}
}

// Signup registers the account and then logs in with the same credentials;
// the login response is what carries the session token actually used.
func (s *RemoteService) Signup(ctx context.Context, data SignupData) (*AuthResult, error) {
	if _, _, err := s.backend.Register(ctx, data.Name, data.Email, data.Password, data.Role); err != nil {
		return s.asResult(ctx, "signup", err)
	}
	return s.Login(ctx, LoginData{Email: data.Email, Password: data.Password})
}

func (s *RemoteService) Login(ctx context.Context, data LoginData) (*AuthResult, error) {
	u, tok, err := s.backend.Login(ctx, data.Email, data.Password)
	if err != nil {
		return s.asResult(ctx, "login", err)
	}

	s.log.Info(ctx, "user logged in", "email", u.Email)
	return &AuthResult{Success: true, User: u.Sanitized(), Token: tok}, nil
}

func (s *RemoteService) VerifyToken(ctx context.Context, tok string) (*TokenCheck, error) {
	if err := s.backend.Verify(ctx, tok); err != nil {
		s.log.Debug(ctx, "token rejected by backend", "reason", err)
		return &TokenCheck{Valid: false}, nil
	}

	u, err := s.backend.Me(ctx, tok)
	if err != nil {
		s.log.Debug(ctx, "profile fetch failed after verify", "reason", err)
		return &TokenCheck{Valid: false}, nil
	}

	return &TokenCheck{Valid: true, User: u.Sanitized()}, nil
}

// asResult turns backend failures the user can act on into AuthResult
// messages; anything else stays an error.
func (s *RemoteService) asResult(ctx context.Context, op string, err error) (*AuthResult, error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		s.log.Warn(ctx, "backend rejected "+op, "status", apiErr.StatusCode, "message", apiErr.Message)
		return failure(apiErr.Message), nil
	}
	if errors.Is(err, common.ErrUnavailable) {
		s.log.Warn(ctx, "backend unreachable during "+op, "error", err)
		return failure(common.ErrUnavailable.Error()), nil
	}
	return nil, fmt.Errorf("%s failed: %w", op, err)
}
