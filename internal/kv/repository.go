// Package kv implements the durable client-side key/value store used in demo
// mode. It is the stand-in for origin-scoped browser storage: a single sqlite
// table of named entries surviving restarts.
package kv

import "context"

// Repository is a named-entry store. Get returns (nil, nil) when the key is
// absent; callers treat a nil value as "no entry".
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
