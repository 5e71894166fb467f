package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Building cache keys from user IDs
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys. The cache is read-side only: /api/me and the admin user list.
// Wager settlement always reads and writes the database row directly.
const usersListKey = "admin:users"

// UserCacheKey returns the cache key for a single user's projection
func UserCacheKey(id uint) string {
	return "user:" + strconv.Itoa(int(id))
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client means caching is disabled; every lookup misses.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// InvalidateUserCache drops the cached projections touched by a balance or
// approval write: the user's own entry and the admin list
func InvalidateUserCache(ctx context.Context, rdb *redis.Client, id uint) {
	if rdb == nil {
		return // Caching disabled
	}
	_ = rdb.Del(ctx, UserCacheKey(id), usersListKey).Err()
}

// UsersListCacheKey returns the cache key for the admin user list
func UsersListCacheKey() string {
	return usersListKey
}
