package cache

import "strings"

const (
	GlobalKeyPrefix = "aiquiz"
)

// GenerateKey namespaces a storage key for a shared Redis instance:
// aiquiz:<objectType>:<identifier>[:<params joined by "_">].
func GenerateKey(objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// LeaderboardKey is the Redis key holding the leaderboard blob.
func LeaderboardKey(storageKey string) string {
	return GenerateKey("leaderboard", storageKey)
}
