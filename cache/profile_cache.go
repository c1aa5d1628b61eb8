package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"krishi-market/models"
)

const profileKeyPrefix = "user:profile:"

// ProfileCache stores public profiles for the fetch endpoint.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*models.PublicProfile, bool)
	Set(ctx context.Context, profile models.PublicProfile)
	Delete(ctx context.Context, id string)
}

// NewClient connects to Redis and pings it before returning.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisProfileCache keeps JSON-encoded profiles under user:profile:<id>.
// Failures are logged and treated as misses.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl, log: log}
}

func (c *RedisProfileCache) Get(ctx context.Context, id string) (*models.PublicProfile, bool) {
	data, err := c.client.Get(ctx, profileKeyPrefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("profile cache read failed", zap.String("user_id", id), zap.Error(err))
		}
		return nil, false
	}

	var profile models.PublicProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		c.log.Warn("profile cache entry unreadable", zap.String("user_id", id), zap.Error(err))
		return nil, false
	}
	return &profile, true
}

func (c *RedisProfileCache) Set(ctx context.Context, profile models.PublicProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		c.log.Warn("profile cache marshal failed", zap.String("user_id", profile.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, profileKeyPrefix+profile.ID, string(data), c.ttl).Err(); err != nil {
		c.log.Warn("profile cache write failed", zap.String("user_id", profile.ID), zap.Error(err))
	}
}

func (c *RedisProfileCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, profileKeyPrefix+id).Err(); err != nil {
		c.log.Warn("profile cache delete failed", zap.String("user_id", id), zap.Error(err))
	}
}

func (c *RedisProfileCache) Close() error {
	return c.client.Close()
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.PublicProfile, bool) { return nil, false }
func (Noop) Set(context.Context, models.PublicProfile)                 {}
func (Noop) Delete(context.Context, string)                            {}
