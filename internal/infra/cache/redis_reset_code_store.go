package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// パスワードリセットコードをTTL付きで保持する。
// DBの行に持たせず、期限切れはRedisに任せる。
type RedisResetCodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisResetCodeStore(rdb *redis.Client, ttl time.Duration) *RedisResetCodeStore {
	return &RedisResetCodeStore{rdb: rdb, ttl: ttl}
}

func (s *RedisResetCodeStore) Set(ctx context.Context, email string, code string) error {
	return s.rdb.Set(ctx, "pwreset:"+email, code, s.ttl).Err()
}

func (s *RedisResetCodeStore) Get(ctx context.Context, email string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "pwreset:"+email).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// 使用済みコードは消す（1回限り）
func (s *RedisResetCodeStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, "pwreset:"+email).Err()
}
