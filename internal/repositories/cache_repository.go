package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кеш справочников (филиалы и т.п.).
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
