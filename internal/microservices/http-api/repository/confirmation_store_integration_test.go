//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisStore(t *testing.T) (*redisConfirmationStore, *redis.Client) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { client.Close() })

	return &redisConfirmationStore{client: client}, client
}

// A code reissued between the check and the delete must survive the stale exchange.
func TestConsume_ReissueDuringExchangeKeepsNewCode(t *testing.T) {
	ctx := context.Background()
	store, client := newRedisStore(t)
	require.NoError(t, store.Save(ctx, "u1", "old-code", time.Minute))

	store.beforeCommit = func() {
		store.beforeCommit = nil
		require.NoError(t, store.Save(ctx, "u1", "new-code", time.Minute))
	}

	ok, err := store.Consume(ctx, "u1", "old-code")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := client.Exists(ctx, confirmationKey("u1")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "reissued code was deleted")

	ok, err = store.Consume(ctx, "u1", "new-code")
	require.NoError(t, err)
	assert.True(t, ok)
}
