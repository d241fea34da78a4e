package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/noelps-git/tastemates/internal/config"
	"github.com/redis/go-redis/v9"
)

// unreadTTL bounds staleness if an invalidation is ever lost.
const unreadTTL = time.Hour

// RedisCache holds the unread-notification counters. It is a display-only
// accelerator: the database count is always the fallback and the authority.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config. Only Addr is
// mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.RedisAddr,
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForUnreadCount generates the key for a user's unread-notification count.
func (c *RedisCache) KeyForUnreadCount(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// GetUnreadCount returns the cached count and whether it was a hit. TTL is
// refreshed on access.
func (c *RedisCache) GetUnreadCount(ctx context.Context, userID uint) (int64, bool, error) {
	key := c.KeyForUnreadCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}

	_ = c.Client.Expire(ctx, key, unreadTTL).Err()
	return n, true, nil
}

// SetUnreadCount stores a freshly computed count with the standard TTL.
func (c *RedisCache) SetUnreadCount(ctx context.Context, userID uint, count int64) error {
	return c.Client.Set(ctx, c.KeyForUnreadCount(userID), count, unreadTTL).Err()
}

// IncrUnread bumps an existing counter. A missing key is left absent so the
// next read repopulates it from the database instead of starting from zero.
func (c *RedisCache) IncrUnread(ctx context.Context, userID uint) error {
	key := c.KeyForUnreadCount(userID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return err
	}
	return c.Client.Incr(ctx, key).Err()
}

// InvalidateUnread drops the counter after a read-state change; the next
// read recomputes it.
func (c *RedisCache) InvalidateUnread(ctx context.Context, userID uint) error {
	return c.Client.Del(ctx, c.KeyForUnreadCount(userID)).Err()
}
