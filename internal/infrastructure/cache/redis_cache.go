package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

const redisKeyPrefix = "loanmatch:"

// RedisScheduleCache stores schedules as JSON in Redis with a TTL.
type RedisScheduleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisScheduleCache wraps an existing client.
func NewRedisScheduleCache(client redis.Cmdable, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{client: client, ttl: ttl}
}

// NewRedisClient dials Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Get implements port.ScheduleCache.
func (c *RedisScheduleCache) Get(ctx context.Context, key string) ([]model.AmortizationRow, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var rows []model.AmortizationRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, fmt.Errorf("decode cached schedule %s: %w", key, err)
	}
	return rows, true, nil
}

// Set implements port.ScheduleCache.
func (c *RedisScheduleCache) Set(ctx context.Context, key string, rows []model.AmortizationRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode schedule %s: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
