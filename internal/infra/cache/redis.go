package cache

import (
	"context"
	"errors"
	"time"

	"takeout/internal/config"

	"github.com/redis/go-redis/v9"
)

const updateRetryLimit = 10

// RedisStore は repository.CacheStore のRedis実装。
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.Config) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Update はWATCH/MULTIの楽観ロックで読み→変更→書きをやり直し付きで回す。
// 複数端末から同じカートを触っても更新が消えない。
func (s *RedisStore) Update(ctx context.Context, key string, ttl time.Duration,
	fn func(current []byte, exists bool) ([]byte, bool, error)) error {

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		exists := true
		if errors.Is(err, redis.Nil) {
			current = nil
			exists = false
		} else if err != nil {
			return err
		}

		next, remove, err := fn(current, exists)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if remove {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < updateRetryLimit; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		//競合したのでやり直し
	}
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
