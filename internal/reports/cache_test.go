package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchJSONLoadsOnce(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return []OrderAnalytics{{Period: PeriodKey{Year: 2024, Month: 3}, OrderCount: 2, TotalAmount: 150}}, nil
	}

	key, err := cache.BuildKey(ctx, "reports", "orders", "7", "monthly")
	require.NoError(t, err)

	var first, second []OrderAnalytics
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	require.Equal(t, 1, calls)
	require.Equal(t, first, second)
	require.Equal(t, 2, first[0].OrderCount)
}

func TestCacheBumpInvalidates(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key1, err := cache.BuildKey(ctx, "reports", "orders", "7")
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	key2, err := cache.BuildKey(ctx, "reports", "orders", "7")
	require.NoError(t, err)
	require.NotEqual(t, key1, key2)
}

func TestNilCachePassesThrough(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports", "orders", "7")
	require.NoError(t, err)

	var dest []OrderAnalytics
	require.NoError(t, cache.FetchJSON(ctx, key, &dest, func(context.Context) (interface{}, error) {
		return []OrderAnalytics{{OrderCount: 1}}, nil
	}))
	require.Len(t, dest, 1)
	require.NoError(t, cache.Bump(ctx))
}
