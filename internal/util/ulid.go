package util

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using the package's monotonic,
// goroutine-safe default entropy.
func NewULID() string {
	return ulid.Make().String()
}

// NewULIDAt generates a ULID whose timestamp component is t.
func NewULIDAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
