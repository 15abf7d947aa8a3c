package domain

import (
	"context"
)

// BlobError represents an error originating from the blob store.
type BlobError string

func (e BlobError) Error() string {
	return string(e)
}

// ErrBlobNotFound is returned when nothing is stored under a key.
const ErrBlobNotFound = BlobError("blob: key not found")

// BlobStore is the persistence medium behind the leaderboard: one serialized
// value per key. Implementations are the adapters (file, redis, sqlite).
type BlobStore interface {
	// Get returns the value stored under key.
	// It returns ErrBlobNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. It does not fail if the key is absent.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the medium.
	Ping(ctx context.Context) error
}
