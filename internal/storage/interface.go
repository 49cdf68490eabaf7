// Package storage persists the meal collection. The whole collection lives
// under one key in a Backend; Tiered chains a primary (remote) backend with a
// secondary (local) one.
package storage

import (
	"context"
	"errors"
)

// ErrPersistence is returned when a write could not be stored in any tier,
// or when the collection it would modify could not be read.
var ErrPersistence = errors.New("persistence failed")

// Backend is a string key-value store.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error

	// Name identifies the backend kind in logs and metrics.
	Name() string
	// GetConfigPath returns a non-sensitive description of where data lives.
	GetConfigPath() string
}
