package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/logging"
	"github.com/agsavn/foodwatch/internal/password"
	"github.com/agsavn/foodwatch/internal/token"
	"github.com/agsavn/foodwatch/internal/user"
)

// LocalService runs the auth operations against a user.Store, acting as the
// whole backend in demo mode.
type LocalService struct {
	store    user.Store
	hasher   password.Hasher
	validity time.Duration
	log      logging.Logger
	now      func() time.Time
}

func NewLocalService(store user.Store, hasher password.Hasher, log logging.Logger) *LocalService {
	return &LocalService{
		store:    store,
		hasher:   hasher,
		validity: token.Validity,
		log:      log,
		now:      time.Now,
	}
}

func (s *LocalService) Signup(ctx context.Context, data SignupData) (*AuthResult, error) {
	if err := password.ValidateStrength(data.Password); err != nil {
		return failure(err.Error()), nil
	}

	if _, err := s.store.FindByEmail(ctx, data.Email); err == nil {
		return failure(common.ErrDuplicateEmail.Error()), nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("signup lookup failed: %w", err)
	}

	hash, err := s.hasher.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := data.Role
	if role == "" {
		role = user.RoleUser
	}

	created, err := s.store.Create(ctx, &user.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       user.StatusActive,
	})
	if err != nil {
		// the store re-checks uniqueness; a concurrent signup can still
		// land here first
		if errors.Is(err, common.ErrDuplicateEmail) {
			return failure(common.ErrDuplicateEmail.Error()), nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := token.Generate(created.ID, created.Email, string(created.Role), s.validity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info(ctx, "user signed up", "email", created.Email, "role", created.Role)
	return &AuthResult{Success: true, User: created.Sanitized(), Token: tok}, nil
}

func (s *LocalService) Login(ctx context.Context, data LoginData) (*AuthResult, error) {
	u, err := s.store.FindByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// same message as a wrong password: never reveal whether
			// the email is registered
			return failure(common.ErrInvalidCredentials.Error()), nil
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if u.Status != user.StatusActive {
		return failure(common.ErrInactiveAccount.Error()), nil
	}

	if !s.hasher.Verify(data.Password, u.PasswordHash) {
		return failure(common.ErrInvalidCredentials.Error()), nil
	}

	now := s.now().UTC()
	updated, err := s.store.Update(ctx, u.ID, user.Update{LastLogin: &now})
	if err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}

	tok, err := token.Generate(updated.ID, updated.Email, string(updated.Role), s.validity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info(ctx, "user logged in", "email", updated.Email)
	return &AuthResult{Success: true, User: updated.Sanitized(), Token: tok}, nil
}

func (s *LocalService) VerifyToken(ctx context.Context, tok string) (*TokenCheck, error) {
	claims, err := token.Parse(tok)
	if err != nil {
		s.log.Debug(ctx, "token rejected", "reason", err)
		return &TokenCheck{Valid: false}, nil
	}

	// re-resolve the user so role/status changes since issuance are
	// reflected, rather than trusting the token's snapshot
	u, err := s.store.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &TokenCheck{Valid: false}, nil
		}
		return nil, fmt.Errorf("token user lookup failed: %w", err)
	}

	return &TokenCheck{Valid: true, User: u.Sanitized()}, nil
}
