package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"jobpilot/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis wraps the primary cache backend. A failed connection at startup or
// at runtime degrades every operation to a no-op miss; the matcher must
// never see a cache error.
type Redis struct {
	client *redis.Client
	log    *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, log *zap.Logger) *Redis {
	addr := fmt.Sprintf("%s:%s", strings.TrimSpace(cfg.Host), strings.TrimSpace(cfg.Port))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if log != nil {
			log.Warn("redis unavailable, falling back to memory cache", zap.String("addr", addr), zap.Error(err))
		}
		_ = client.Close()
		return &Redis{client: nil, log: log}
	}

	if log != nil {
		log.Info("redis cache connected", zap.String("addr", addr))
	}
	return &Redis{client: client, log: log}
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.log == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis unavailable, falling back to memory cache", zap.Error(err))
	}
}

// Get returns the raw value for key, or nil when absent or unreachable.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if !r.Available() {
		return nil, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.warnUnavailableOnce(err)
		return nil, err
	}
	return b, nil
}

// Set stores data under key with a native expiry. Non-positive TTLs are
// rejected here: an unbounded SET would outlive every invalidation sweep.
func (r *Redis) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix and reports how
// many were deleted.
func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if !r.Available() {
		return 0, nil
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return 0, nil
	}

	deleted := 0
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		n, err := r.client.Del(ctx, k).Result()
		if err != nil {
			if r.log != nil {
				r.log.Warn("redis delete failed", zap.String("key", k), zap.Error(err))
			}
			continue
		}
		deleted += int(n)
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(err)
		return deleted, err
	}
	return deleted, nil
}

// Size reports the number of keys in the backing database.
func (r *Redis) Size(ctx context.Context) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	n, err := r.client.DBSize(ctx).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return 0, err
	}
	return n, nil
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}
