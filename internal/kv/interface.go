// Package kv provides the byte-blob backends the archive is persisted to.
// Each backend stores whole values under string keys; there is no partial
// update and no locking.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Blob is a minimal durable key-value store.
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}
