package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/core/ports"
)

const leaderboardTTL = time.Minute

// LeaderboardCache caches ranked leaderboard responses in Redis.
// Key format: leaderboard:<role>:<limit>
//
// Cache failures degrade to a miss; the leaderboard is always rebuildable
// from Postgres.
type LeaderboardCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLeaderboardCache wraps the given Redis client.
func NewLeaderboardCache(client *redis.Client, log zerolog.Logger) *LeaderboardCache {
	return &LeaderboardCache{client: client, log: log}
}

// Get returns the cached rows for the role/limit pair, if present.
func (c *LeaderboardCache) Get(ctx context.Context, role string, limit int) ([]ports.LeaderboardRow, bool) {
	payload, err := c.client.Get(ctx, c.key(role, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("role", role).Msg("leaderboard cache read failed")
		}
		return nil, false
	}

	var rows []ports.LeaderboardRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		c.log.Warn().Err(err).Str("role", role).Msg("leaderboard cache entry corrupt")
		return nil, false
	}
	return rows, true
}

// Set stores the rows for the role/limit pair (expires after leaderboardTTL).
func (c *LeaderboardCache) Set(ctx context.Context, role string, limit int, rows []ports.LeaderboardRow) {
	payload, err := json.Marshal(rows)
	if err != nil {
		c.log.Warn().Err(err).Str("role", role).Msg("leaderboard cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(role, limit), payload, leaderboardTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("role", role).Msg("leaderboard cache write failed")
	}
}

func (c *LeaderboardCache) key(role string, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", role, limit)
}
