package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/noelps-git/tastemates/internal/cache"
	"github.com/noelps-git/tastemates/internal/config"
	"github.com/stretchr/testify/assert"
)

func setupCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCache(&config.Config{RedisAddr: mr.Addr()})
}

func TestUnreadCount_MissThenSet(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	_, hit, err := c.GetUnreadCount(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, hit)

	err = c.SetUnreadCount(ctx, 1, 3)
	assert.NoError(t, err)

	n, hit, err := c.GetUnreadCount(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(3), n)
}

func TestIncrUnread_OnlyBumpsExistingKey(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	// missing key stays missing so the DB repopulates it
	assert.NoError(t, c.IncrUnread(ctx, 2))
	_, hit, err := c.GetUnreadCount(ctx, 2)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetUnreadCount(ctx, 2, 5))
	assert.NoError(t, c.IncrUnread(ctx, 2))

	n, hit, err := c.GetUnreadCount(ctx, 2)
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(6), n)
}

func TestInvalidateUnread(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	assert.NoError(t, c.SetUnreadCount(ctx, 3, 9))
	assert.NoError(t, c.InvalidateUnread(ctx, 3))

	_, hit, err := c.GetUnreadCount(ctx, 3)
	assert.NoError(t, err)
	assert.False(t, hit)
}
