package pg_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/pg"
)

type call struct {
	sql  string
	args []any
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type fakeDB struct {
	calls []call
	row   fakeRow
	tag   pgconn.CommandTag
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.tag, f.err
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return nil, f.err
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.row
}

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, db *fakeDB, opts ...pg.Option) *pg.Store {
	t.Helper()
	opts = append([]pg.Option{pg.WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := pg.NewStore(db, opts...)
	require.NoError(t, err)
	return s
}

func TestStore_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{value: `{"visits":1}`}}
		v, err := newStore(t, db).Get(ctx, "session:a")
		require.NoError(t, err)
		assert.Equal(t, `{"visits":1}`, v)

		require.Len(t, db.calls, 1)
		assert.Contains(t, db.calls[0].sql, `FROM "kv_entries"`)
		assert.Equal(t, []any{"session:a", fixedNow}, db.calls[0].args)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		_, err := newStore(t, db).Get(ctx, "session:a")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		db := &fakeDB{row: fakeRow{err: boom}}
		_, err := newStore(t, db).Get(ctx, "session:a")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, kv.ErrNotFound)
	})
}

func TestStore_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("with ttl", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		require.NoError(t, newStore(t, db).Put(ctx, "k", "v", kv.WithExpirationTTL(5*time.Minute)))

		require.Len(t, db.calls, 1)
		args := db.calls[0].args
		require.Len(t, args, 4)
		assert.Equal(t, "k", args[0])
		assert.Equal(t, "v", args[1])
		expiresAt, ok := args[2].(*time.Time)
		require.True(t, ok)
		require.NotNil(t, expiresAt)
		assert.Equal(t, fixedNow.Add(5*time.Minute), *expiresAt)
		assert.Equal(t, fixedNow, args[3])
	})

	t.Run("without ttl", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		require.NoError(t, newStore(t, db).Put(ctx, "k", "v"))
		assert.Nil(t, db.calls[0].args[2].(*time.Time))
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		assert.ErrorIs(t, newStore(t, db).Put(ctx, "", "v"), kv.ErrEmptyKey)
		assert.Empty(t, db.calls)
	})
}

func TestStore_DeleteAndPurge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 3")}
	s := newStore(t, db, pg.WithTable("sessions_kv"))

	require.NoError(t, s.Delete(ctx, "k"))
	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].sql, `DELETE FROM "sessions_kv" WHERE key = $1`)
	assert.Equal(t, []any{fixedNow}, db.calls[1].args)
}

func TestNewStore_InvalidTable(t *testing.T) {
	t.Parallel()
	_, err := pg.NewStore(&fakeDB{}, pg.WithTable("  "))
	assert.ErrorIs(t, err, pg.ErrInvalidTableName)
}
