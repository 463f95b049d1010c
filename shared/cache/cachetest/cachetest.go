// Package cachetest provides a RedisCache backed by an in-process miniredis
// server for service tests.
package cachetest

import (
	"mediconnect/infras/otel/mocks"
	"mediconnect/shared/cache"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// New starts a miniredis server that lives for the duration of t.
func New(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}
