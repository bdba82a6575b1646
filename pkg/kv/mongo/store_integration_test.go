//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/mongo"
)

func TestStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, mongo.Config{
		ConnectionURL:  fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  5,
		RetryInterval:  time.Second,
	})
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(ctx) }()

	require.NoError(t, mongo.Healthcheck(client)(ctx))

	now := time.Now().Truncate(time.Millisecond)
	store := mongo.NewStore(client.Database("kvsession_test").Collection("kv_entries"),
		mongo.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, store.EnsureIndexes(ctx))

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "session:a", `{"visits":1}`))
		v, err := store.Get(ctx, "session:a")
		require.NoError(t, err)
		assert.Equal(t, `{"visits":1}`, v)

		require.NoError(t, store.Delete(ctx, "session:a"))
		_, err = store.Get(ctx, "session:a")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("expiration", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "session:ttl", "v", kv.WithExpirationTTL(300*time.Second)))

		now = now.Add(299 * time.Second)
		_, err := store.Get(ctx, "session:ttl")
		require.NoError(t, err)

		now = now.Add(time.Second)
		_, err = store.Get(ctx, "session:ttl")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "list.a:1", "v"))
		require.NoError(t, store.Put(ctx, "listXa:2", "v"))

		keys, err := store.List(ctx, "list.a:")
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "list.a:1", keys[0].Name)
	})
}
