// Package store defines the durable key-value surface the task list
// persists into, and picks a backend from configuration.
package store

import (
	"context"
	"errors"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("store closed")
)

// KV is a string key-value store. Get reports whether the key exists.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
