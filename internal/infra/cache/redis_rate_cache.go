package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// 為替レートのキャッシュ。上流APIへの呼び出しを1時間に1回に抑える。
type RedisRateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRateCache(rdb *redis.Client, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{rdb: rdb, ttl: ttl}
}

func (c *RedisRateCache) Get(ctx context.Context, base string) (map[string]float64, bool, error) {
	val, err := c.rdb.Get(ctx, "fxrates:"+base).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rates map[string]float64
	if err := json.Unmarshal([]byte(val), &rates); err != nil {
		return nil, false, err
	}
	return rates, true, nil
}

func (c *RedisRateCache) Set(ctx context.Context, base string, rates map[string]float64) error {
	b, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "fxrates:"+base, b, c.ttl).Err()
}
