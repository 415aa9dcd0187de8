package usecase

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"jobpilot/internal/domain/matching"
	"jobpilot/internal/infrastructure/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedMatch is the serialized form of one ranked match. This is the wire
// shape stored in both cache backends and returned on hits.
type CachedMatch struct {
	ProjectID           uuid.UUID            `json:"project_id"`
	ProjectTitle        string               `json:"project_title"`
	ConfidenceScore     float64              `json:"confidence_score"`
	Explanation         matching.Explanation `json:"explanation"`
	MatchingKeywords    []string             `json:"matching_keywords"`
	SimilarityBreakdown matching.Breakdown   `json:"similarity_breakdown"`
	CachedAt            time.Time            `json:"cached_at"`
}

type CacheStats struct {
	RedisAvailable bool  `json:"redis_available"`
	RedisKeys      int64 `json:"redis_keys"`
	MemoryEntries  int   `json:"memory_entries"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
}

// MatchCache memoizes ranked match lists under fingerprint keys. Redis is
// the primary backend; a mutex-guarded in-process store takes over when
// Redis is down or a write fails. Every failure degrades to a cache miss —
// no error ever reaches the caller.
type MatchCache struct {
	redis      *cache.Redis
	memory     *cache.MemoryStore
	defaultTTL time.Duration
	log        *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func NewMatchCache(redis *cache.Redis, memory *cache.MemoryStore, defaultTTL time.Duration, log *zap.Logger) *MatchCache {
	if memory == nil {
		memory = cache.NewMemoryStore(0)
	}
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchCache{
		redis:      redis,
		memory:     memory,
		defaultTTL: defaultTTL,
		log:        log,
	}
}

// GetCached returns the cached list for key, or nil on a miss. Redis is
// consulted first; expired fallback entries are evicted and treated as
// absent.
func (c *MatchCache) GetCached(ctx context.Context, key string) []CachedMatch {
	if data, err := c.redis.Get(ctx, key); err != nil {
		c.log.Debug("redis get failed, trying memory cache", zap.String("key", key), zap.Error(err))
	} else if data != nil {
		var out []CachedMatch
		if err := json.Unmarshal(data, &out); err == nil {
			c.hits.Add(1)
			c.log.Debug("cache hit (redis)", zap.String("key", key))
			return out
		}
		c.log.Warn("corrupt cache entry dropped", zap.String("key", key))
		_ = c.redis.Delete(ctx, key)
	}

	if data, ok := c.memory.Get(key); ok {
		var out []CachedMatch
		if err := json.Unmarshal(data, &out); err == nil {
			c.hits.Add(1)
			c.log.Debug("cache hit (memory)", zap.String("key", key))
			return out
		}
	}

	c.misses.Add(1)
	c.log.Debug("cache miss", zap.String("key", key))
	return nil
}

// PutCached stores records under key with the default TTL.
func (c *MatchCache) PutCached(ctx context.Context, key string, records []CachedMatch) {
	c.PutCachedTTL(ctx, key, records, c.defaultTTL)
}

// PutCachedTTL stores records with an explicit TTL. A non-positive TTL
// produces an entry that is already expired: Redis is skipped and the
// memory store records it as stale.
func (c *MatchCache) PutCachedTTL(ctx context.Context, key string, records []CachedMatch, ttl time.Duration) {
	data, err := json.Marshal(records)
	if err != nil {
		c.log.Warn("failed to serialize match results for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if ttl > 0 {
		if err := c.redis.Set(ctx, key, data, ttl); err != nil {
			c.log.Debug("redis set failed, memory cache only", zap.String("key", key), zap.Error(err))
		}
	}
	c.memory.Set(key, data, ttl)
}

// ToCachedMatches converts matcher output into the serialized cache shape,
// stamping each record with now.
func ToCachedMatches(results []matching.MatchResult, now time.Time) []CachedMatch {
	out := make([]CachedMatch, 0, len(results))
	for _, r := range results {
		out = append(out, CachedMatch{
			ProjectID:           r.Project.ID,
			ProjectTitle:        r.Project.Title,
			ConfidenceScore:     r.ConfidenceScore,
			Explanation:         r.Explanation,
			MatchingKeywords:    r.MatchingKeywords,
			SimilarityBreakdown: r.Breakdown,
			CachedAt:            now,
		})
	}
	return out
}

// InvalidateUser removes every entry for userID from both backends and
// returns the total removed. Best effort: a Redis failure only shrinks the
// count.
func (c *MatchCache) InvalidateUser(ctx context.Context, userID uuid.UUID) int {
	prefix := matchUserPrefix(userID)

	removed, err := c.redis.DeleteByPrefix(ctx, prefix)
	if err != nil {
		c.log.Warn("redis invalidation incomplete", zap.String("prefix", prefix), zap.Error(err))
	}
	removed += c.memory.DeleteByPrefix(prefix)

	c.log.Info("invalidated user match cache",
		zap.String("user_id", userID.String()),
		zap.Int("removed", removed))
	return removed
}

// Stats reports backend availability and size counts.
func (c *MatchCache) Stats(ctx context.Context) CacheStats {
	stats := CacheStats{
		RedisAvailable: c.redis.Available(),
		MemoryEntries:  c.memory.Len(),
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
	}
	if n, err := c.redis.Size(ctx); err == nil {
		stats.RedisKeys = n
	}
	return stats
}
