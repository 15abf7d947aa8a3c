package domain

import (
	"context"
	"sort"
)

// MaxScore is the score of a perfect attempt.
const MaxScore = 100

// DefaultLeaderboardLimit bounds the persisted leaderboard.
const DefaultLeaderboardLimit = 100

// LeaderboardEntry is one finished attempt. Created once on completion and
// never edited afterwards.
type LeaderboardEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// RankEntries appends entry to entries, orders the result by descending
// score and keeps the first limit entries. Equal scores keep their relative
// order, so an older entry stays ahead of a newer one with the same score.
func RankEntries(entries []LeaderboardEntry, entry LeaderboardEntry, limit int) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, 0, len(entries)+1)
	ranked = append(ranked, entries...)
	ranked = append(ranked, entry)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopEntries returns at most n entries from the head of a ranked list.
func TopEntries(entries []LeaderboardEntry, n int) []LeaderboardEntry {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// LeaderboardStore is the only path to the persisted leaderboard.
type LeaderboardStore interface {
	// Load returns the persisted entries, or an empty list when nothing
	// usable is stored.
	Load(ctx context.Context) []LeaderboardEntry

	// Record stores a new entry for name and score and returns it together
	// with the updated ranking.
	Record(ctx context.Context, name string, score int) (LeaderboardEntry, []LeaderboardEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
