package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// FormTokenKey is the cache key for a public form looked up by share token.
func FormTokenKey(shareToken string) string {
	return "form:token:" + shareToken
}
