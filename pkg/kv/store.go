package kv

import (
	"context"
	"time"
)

// Store is a string key-value datastore with optional per-key expiration.
// Implementations must treat expired keys as absent.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string, opts ...PutOption) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the live keys starting with prefix.
	List(ctx context.Context, prefix string) ([]Key, error)
}

// Key describes a listed entry. Expiration is zero for keys without TTL.
type Key struct {
	Name       string
	Expiration time.Time
}

// PutOptions holds per-write settings.
type PutOptions struct {
	// ExpirationTTL is the lifetime of the record. Zero means no expiration.
	ExpirationTTL time.Duration
}

type PutOption func(*PutOptions)

// WithExpirationTTL sets the record lifetime. Non-positive values disable expiration.
func WithExpirationTTL(ttl time.Duration) PutOption {
	return func(o *PutOptions) {
		if ttl > 0 {
			o.ExpirationTTL = ttl
		} else {
			o.ExpirationTTL = 0
		}
	}
}

// ApplyPutOptions resolves opts into PutOptions. Intended for Store implementations.
func ApplyPutOptions(opts ...PutOption) PutOptions {
	var o PutOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
