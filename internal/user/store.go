package user

import (
	"context"
	"time"
)

// Update describes a partial modification of a user record. Nil fields are
// left unchanged. The record id itself is not updatable.
type Update struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Status       *Status
	LastLogin    *time.Time
}

// Store is the system-of-record contract shared by the local demo store and
// the Postgres store.
//
// Error contract: FindByEmail/FindByID/Update/Delete return
// common.ErrNotFound for a missing record; Create and Update return
// common.ErrDuplicateEmail on a case-insensitive email collision.
type Store interface {
	// List returns all records.
	List(ctx context.Context) ([]*User, error)

	// FindByEmail matches email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*User, error)

	FindByID(ctx context.Context, id string) (*User, error)

	// Create assigns a fresh id and CreatedAt, then persists u.
	Create(ctx context.Context, u *User) (*User, error)

	// Update merges upd into the record and persists it.
	Update(ctx context.Context, id string, upd Update) (*User, error)

	// Delete removes the record entirely. The admin convention of
	// "soft delete" is Update(id, {Status: inactive}) instead.
	Delete(ctx context.Context, id string) error
}

// Op is the kind of mutation announced on the change feed.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one store mutation. User is sanitized and nil for deletes.
type Event struct {
	Op   Op
	ID   string
	User *User
}

// Watcher is the typed change feed a store may expose so concurrent views
// can reload after mutations. Delivery is best-effort: slow subscribers may
// miss events, and no ordering is guaranteed across subscribers.
type Watcher interface {
	// Watch registers a subscriber. The returned cancel func must be called
	// to release it.
	Watch() (<-chan Event, func())
}
