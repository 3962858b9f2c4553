//go:build integration

package redis_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"petdoc-id/internal/adapters/storage/redis"
	"petdoc-id/internal/domain/registration"
)

func TestCounterStore_WithRegistration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := redis.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewCounterStore(client)
	require.NoError(t, store.Health(ctx))

	svc := registration.NewService(store, "redis")

	_, code, err := svc.NextCode(ctx, "rj")
	require.NoError(t, err)
	require.Equal(t, "RJ-0001-001", code)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, c, err := svc.NextCode(ctx, "RJ")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[c] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, 100)
	require.False(t, seen["RJ-0001-001"])
	require.True(t, seen["RJ-0001-101"])
}
