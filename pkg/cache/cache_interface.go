package cache

import (
	"context"
	"strings"
	"time"
)

// Cache là key-value store lưu value dạng JSON.
// Implementations: infrastructure/cache.RedisCache và Memory.
type Cache interface {
	// Get unmarshal value vào dest. found=false khi miss hoặc key đã hết hạn, dest giữ nguyên.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set ghi đè value, ttl <= 0 nghĩa là không hết hạn
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// Key nối các phần bằng ":" theo convention của Redis, vd Key("account", id) → "account:<id>"
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
