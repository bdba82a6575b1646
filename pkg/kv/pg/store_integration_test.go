//go:build integration

package pg_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/pg"
)

func TestStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() { _ = pgContainer.Terminate(ctx) }()

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := pg.Config{
		ConnectionString: dsn,
		RetryAttempts:    3,
		RetryInterval:    time.Second,
	}

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pg.Healthcheck(pool)(ctx))
	require.NoError(t, pg.Migrate(ctx, pool, cfg, slog.Default()))
	// Re-running is a no-op.
	require.NoError(t, pg.Migrate(ctx, pool, cfg, slog.Default()))

	now := time.Now()
	store, err := pg.NewStore(pool, pg.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "session:a", `{"visits":1}`))
		v, err := store.Get(ctx, "session:a")
		require.NoError(t, err)
		assert.Equal(t, `{"visits":1}`, v)

		require.NoError(t, store.Put(ctx, "session:a", `{"visits":2}`))
		v, err = store.Get(ctx, "session:a")
		require.NoError(t, err)
		assert.Equal(t, `{"visits":2}`, v)

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

		n, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("list escapes like patterns", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "p_x:1", "v"))
		require.NoError(t, store.Put(ctx, "pAx:2", "v"))

		keys, err := store.List(ctx, "p_x:")
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "p_x:1", keys[0].Name)
		assert.True(t, keys[0].Expiration.IsZero())
	})
}
