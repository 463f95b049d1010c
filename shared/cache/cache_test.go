package cache_test

import (
	"context"
	"errors"
	"mediconnect/shared/cache"
	"mediconnect/shared/cache/cachetest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotList struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	return cachetest.New(t)
}

func TestRedisCache_SaveGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	want := slotList{Date: "2026-10-19", Times: []string{"09:00", "09:15"}}
	require.NoError(t, c.Save(ctx, "slot:doc-1:2026-10-19", want, 60))

	var got slotList
	require.NoError(t, c.Get(ctx, "slot:doc-1:2026-10-19", &got))
	assert.Equal(t, want, got)

	require.NoError(t, c.Save(ctx, "plain", "value", 60))

	var plain string
	require.NoError(t, c.Get(ctx, "plain", &plain))
	assert.Equal(t, "value", plain)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := newCache(t)

	var got slotList
	err := c.Get(context.Background(), "missing", &got)

	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_Clear(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "slot:doc-1:a", "1", 60))
	require.NoError(t, c.Save(ctx, "slot:doc-1:b", "2", 60))
	require.NoError(t, c.Save(ctx, "slot:doc-2:a", "3", 60))

	require.NoError(t, c.Clear(ctx, "slot:doc-1*"))

	assert.False(t, server.Exists("slot:doc-1:a"))
	assert.False(t, server.Exists("slot:doc-1:b"))
	assert.True(t, server.Exists("slot:doc-2:a"))

	require.NoError(t, c.Delete(ctx, "slot:doc-2:a"))
	assert.False(t, server.Exists("slot:doc-2:a"))
}

func TestRedisCache_Incr(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	first, err := c.Incr(ctx, "slot-gen:doc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := c.Incr(ctx, "slot-gen:doc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	var stored int64
	require.NoError(t, c.Get(ctx, "slot-gen:doc-1", &stored))
	assert.Equal(t, int64(2), stored)

	require.NoError(t, server.Set("not-a-number", "abc"))

	_, err = c.Incr(ctx, "not-a-number")
	assert.Error(t, err)
}
