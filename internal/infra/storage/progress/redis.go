package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранилище прогресса в Redis.
// Ключ: {prefix}:{key}, значение: JSON прогресса курса.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration // 0 = без срока жизни
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Load читает данные по ключу
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - get %s: %v", ErrStoreUnavailable, key, err)
	}
	return data, nil
}

// Save записывает данные, продлевая срок жизни ключа
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, s.fullKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set %s: %v", ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *RedisStore) fullKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
