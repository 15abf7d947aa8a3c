package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/util"

	"go.uber.org/zap"
)

// LeaderboardRepository implements domain.LeaderboardStore on top of a
// single blob: the whole ranked list serialized as a JSON array.
type LeaderboardRepository struct {
	blobs domain.BlobStore
	key   string
	limit int
	now   func() time.Time
	newID func() string

	// Record is load-modify-store; mu keeps it atomic within the process.
	mu sync.Mutex
}

// Option customizes a LeaderboardRepository.
type Option func(*LeaderboardRepository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *LeaderboardRepository) { r.now = now }
}

// WithIDGenerator overrides the entry id source.
func WithIDGenerator(newID func() string) Option {
	return func(r *LeaderboardRepository) { r.newID = newID }
}

// NewLeaderboardRepository stores the leaderboard under key in blobs, keeping
// at most limit entries. A limit outside 1..DefaultLeaderboardLimit falls
// back to DefaultLeaderboardLimit.
func NewLeaderboardRepository(blobs domain.BlobStore, key string, limit int, opts ...Option) *LeaderboardRepository {
	if limit <= 0 || limit > domain.DefaultLeaderboardLimit {
		limit = domain.DefaultLeaderboardLimit
	}
	r := &LeaderboardRepository{
		blobs: blobs,
		key:   key,
		limit: limit,
		now:   time.Now,
		newID: util.NewULID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load implements domain.LeaderboardStore. A missing or corrupt blob reads
// as an empty leaderboard.
func (r *LeaderboardRepository) Load(ctx context.Context) []domain.LeaderboardEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *LeaderboardRepository) load(ctx context.Context) []domain.LeaderboardEntry {
	data, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, domain.ErrBlobNotFound) {
			logger.Get().Warn("Failed to read leaderboard, treating as empty", zap.String("key", r.key), zap.Error(err))
		}
		return []domain.LeaderboardEntry{}
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Get().Warn("Leaderboard blob is corrupt, treating as empty", zap.String("key", r.key), zap.Error(err))
		return []domain.LeaderboardEntry{}
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries
}

// Record implements domain.LeaderboardStore.
func (r *LeaderboardRepository) Record(ctx context.Context, name string, score int) (domain.LeaderboardEntry, []domain.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.LeaderboardEntry{}, nil, domain.NewInvalidInputError("leaderboard name cannot be empty")
	}
	if score < 0 || score > domain.MaxScore {
		return domain.LeaderboardEntry{}, nil, domain.NewInvalidInputError(fmt.Sprintf("score %d outside [0,%d]", score, domain.MaxScore))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := domain.LeaderboardEntry{
		ID:        r.newID(),
		Name:      name,
		Score:     score,
		Timestamp: r.now().UnixMilli(),
	}
	ranked := domain.RankEntries(r.load(ctx), entry, r.limit)

	data, err := json.Marshal(ranked)
	if err != nil {
		return domain.LeaderboardEntry{}, nil, domain.NewInternalError("failed to encode leaderboard", err)
	}
	if err := r.blobs.Set(ctx, r.key, data); err != nil {
		return domain.LeaderboardEntry{}, nil, domain.NewInternalError("failed to persist leaderboard", err)
	}

	logger.Get().Info("Recorded leaderboard entry",
		zap.String("id", entry.ID),
		zap.String("name", entry.Name),
		zap.Int("score", entry.Score),
		zap.Int("entries", len(ranked)))
	return entry, ranked, nil
}

// Clear implements domain.LeaderboardStore.
func (r *LeaderboardRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.blobs.Delete(ctx, r.key); err != nil {
		return domain.NewInternalError("failed to clear leaderboard", err)
	}
	logger.Get().Info("Leaderboard cleared", zap.String("key", r.key))
	return nil
}

var _ domain.LeaderboardStore = (*LeaderboardRepository)(nil)
