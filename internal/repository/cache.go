package repository

import (
	"context"
	"time"
)

// CacheStore はカートと店舗状態を置く外部KVストアの約束。
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Update は読み→変更→書きを楽観ロックで1単位として実行する。
	// fnがremove=trueを返したらキーを消す。競合したら再実行される。
	Update(ctx context.Context, key string, ttl time.Duration,
		fn func(current []byte, exists bool) (next []byte, remove bool, err error)) error
}
