package adapter

import (
	"context"
	"errors"

	"ai-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisBlobAdapter implements the domain.BlobStore interface using a Redis client.
type RedisBlobAdapter struct {
	client redis.UniversalClient
}

// NewRedisBlobAdapter creates a new instance of RedisBlobAdapter.
// It expects a connected client.
func NewRedisBlobAdapter(client redis.UniversalClient) domain.BlobStore {
	return &RedisBlobAdapter{client: client}
}

// Get retrieves a value from Redis.
// It translates redis.Nil to domain.ErrBlobNotFound.
func (r *RedisBlobAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set stores a value without expiration; the leaderboard lives until reset.
func (r *RedisBlobAdapter) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Delete removes a key from Redis.
func (r *RedisBlobAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisBlobAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ domain.BlobStore = (*RedisBlobAdapter)(nil)
