package port

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KeyValueStorage is durable local storage for serialized client state.
type KeyValueStorage interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
