//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cache_test
package cache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client подмножество *goredis.Client, которым пользуется кэш.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}
