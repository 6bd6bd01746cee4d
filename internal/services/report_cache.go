package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hearthstack/homescore-backend/internal/platform/envutil"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
)

// ReportCache is a read-through cache for assembled composite reports.
// Implementations must treat misses and backend errors identically: a
// cache problem can never fail a report request.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}

type redisReportCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisReportCache connects using REDIS_ADDR / REDIS_PASSWORD /
// REDIS_DB. Returns nil when REDIS_ADDR is unset; callers treat a nil
// cache as a permanent miss.
func NewRedisReportCache(baseLog *logger.Logger) ReportCache {
	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.Str("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	})
	return &redisReportCache{
		client: client,
		log:    baseLog.With("service", "ReportCache"),
	}
}

func (c *redisReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Cache read failed", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

func (c *redisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (c *redisReportCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", "key", key, "error", err)
	}
}
