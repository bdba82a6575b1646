// Package pg provides a PostgreSQL-backed kv.Store built on pgx, plus the
// connection, health-check and migration helpers it needs.
//
// Records live in a single table:
//
//	kv_entries(key TEXT PRIMARY KEY, value TEXT, expires_at TIMESTAMPTZ NULL, updated_at TIMESTAMPTZ)
//
// The schema ships as goose migrations embedded in the binary and is applied
// with Migrate. PostgreSQL has no native row TTL, so reads filter on
// expires_at and DeleteExpired purges stale rows; run it periodically.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//	store, err := pg.NewStore(pool)
//
// Configuration is read from the environment (PG_CONN_URL, PG_MAX_OPEN_CONNS,
// ...) via github.com/caarlos0/env.
package pg
