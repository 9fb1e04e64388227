package core

import (
	"context"
	"errors"
	"fmt"
)

type (
	// KeyValueStore is the persistence backend: opaque values under string keys.
	// Implementations must be safe for concurrent use of single calls; they do
	// not make a read followed by a write atomic.
	KeyValueStore interface {
		// Get returns the value stored under key, or ErrKeyNotFound.
		Get(ctx context.Context, key string) ([]byte, error)

		// Set stores value under key, replacing any previous value.
		Set(ctx context.Context, key string, value []byte) error
	}

	// StorageError reports a failure of the underlying persistence medium.
	StorageError struct {
		Op  string
		Key string
		Err error
	}
)

var (
	// ErrKeyNotFound is returned by a KeyValueStore for a key that was never set.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotFound is returned when an operation references an unknown wallpaper.
	ErrNotFound = errors.New("wallpaper not found")

	// ErrStorage matches any *StorageError via errors.Is.
	ErrStorage = errors.New("storage failure")
)

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
