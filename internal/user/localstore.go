package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/kv"
	"github.com/agsavn/foodwatch/internal/password"
	"github.com/google/uuid"
)

// usersKey is the single named entry holding the JSON-serialized array of
// user records. The format is the array itself: no versioning, no schema
// migration path.
const usersKey = "users"

// LocalStore keeps the whole user collection in one kv entry, the demo-mode
// stand-in for a database. Every mutating call persists the full collection
// and announces the change on the feed.
//
// Uniqueness is check-then-insert under a process-local mutex; two separate
// processes sharing the same database file can still race a duplicate email
// past each other. Known gap of the demo store; the Postgres store closes it
// with a unique index.
type LocalStore struct {
	mu     sync.Mutex
	repo   kv.Repository
	hasher password.Hasher
	feed   *feed
	now    func() time.Time
}

func NewLocalStore(repo kv.Repository, hasher password.Hasher) *LocalStore {
	return &LocalStore{
		repo:   repo,
		hasher: hasher,
		feed:   newFeed(),
		now:    time.Now,
	}
}

// seedAccounts returns the two default accounts created on first access:
// one admin, one regular user.
func (s *LocalStore) seedAccounts() ([]*User, error) {
	adminHash, err := s.hasher.Hash("Admin123")
	if err != nil {
		return nil, err
	}
	userHash, err := s.hasher.Hash("User123")
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return []*User{
		{
			ID:           uuid.NewString(),
			Name:         "AGSAVN Admin",
			Email:        "admin@agsavn.org",
			PasswordHash: adminHash,
			Role:         RoleAdmin,
			Status:       StatusActive,
			CreatedAt:    now,
			LastLogin:    &now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "AGSAVN User",
			Email:        "user@agsavn.org",
			PasswordHash: userHash,
			Role:         RoleUser,
			Status:       StatusActive,
			CreatedAt:    now,
		},
	}, nil
}

// load reads the collection, seeding the default accounts if the store is
// empty. Callers must hold s.mu.
func (s *LocalStore) load(ctx context.Context) ([]*User, error) {
	data, err := s.repo.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}

	if data == nil {
		users, err := s.seedAccounts()
		if err != nil {
			return nil, fmt.Errorf("failed to seed default accounts: %w", err)
		}
		if err := s.persist(ctx, users); err != nil {
			return nil, err
		}
		return users, nil
	}

	var users []*User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user collection: %w", err)
	}
	return users, nil
}

// persist writes the full collection back. Callers must hold s.mu.
func (s *LocalStore) persist(ctx context.Context, users []*User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user collection: %w", err)
	}
	return s.repo.Set(ctx, usersKey, data)
}

func (s *LocalStore) List(ctx context.Context) ([]*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LocalStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *LocalStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *LocalStore) Create(ctx context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrDuplicateEmail
		}
	}

	created := *u
	created.ID = uuid.NewString()
	created.CreatedAt = s.now().UTC()

	users = append(users, &created)
	if err := s.persist(ctx, users); err != nil {
		return nil, err
	}

	s.feed.publish(Event{Op: OpCreate, ID: created.ID, User: created.Sanitized()})
	return &created, nil
}

func (s *LocalStore) Update(ctx context.Context, id string, upd Update) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrNotFound
	}

	if upd.Email != nil && !strings.EqualFold(*upd.Email, users[idx].Email) {
		for _, other := range users {
			if other.ID != id && strings.EqualFold(other.Email, *upd.Email) {
				return nil, common.ErrDuplicateEmail
			}
		}
	}

	merged := *users[idx]
	applyUpdate(&merged, upd)
	users[idx] = &merged

	if err := s.persist(ctx, users); err != nil {
		return nil, err
	}

	s.feed.publish(Event{Op: OpUpdate, ID: id, User: merged.Sanitized()})
	return &merged, nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}

	filtered := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	if len(filtered) == len(users) {
		return common.ErrNotFound
	}

	if err := s.persist(ctx, filtered); err != nil {
		return err
	}

	s.feed.publish(Event{Op: OpDelete, ID: id})
	return nil
}

// Watch implements Watcher.
func (s *LocalStore) Watch() (<-chan Event, func()) {
	return s.feed.subscribe()
}

func applyUpdate(u *User, upd Update) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Status != nil {
		u.Status = *upd.Status
	}
	if upd.LastLogin != nil {
		u.LastLogin = upd.LastLogin
	}
}
