// Package kv defines the key-value datastore contract used for server-side
// session storage, together with named store bindings and a Prometheus
// instrumentation decorator.
//
// A Store keeps opaque string values under string keys with an optional
// per-write expiration. Expired keys must read as absent (ErrNotFound), so
// callers never have to compare timestamps themselves.
//
// Backends live in sub-packages:
//
//   - kv/memory – in-process map with TTL, for tests and single-node setups
//   - kv/redis  – go-redis
//   - kv/pg     – PostgreSQL through pgx, schema managed by goose
//   - kv/mongo  – MongoDB with a TTL index
//
// # Bindings
//
// Bindings associate names with stores. A component configured with a binding
// name resolves it at request time from the context, which lets one binary
// route different paths to different datastores:
//
//	bindings := kv.Bindings{"SESSION_DATASTORE": store}
//	r.Use(bindings.Middleware)
//
// # Instrumentation
//
//	metrics := kv.NewMetrics(prometheus.DefaultRegisterer)
//	store = kv.NewInstrumentedStore(store, "redis", metrics)
package kv
