// Package redis provides a Redis-backed kv.Store together with helpers for
// connecting to a Redis server.
//
// The package wraps the go-redis client and adds:
//
//   - Store, a kv.Store that maps Put/Get/Delete onto SET (with EX when a TTL
//     is requested), GET and DEL, and List onto SCAN + PTTL.
//   - Connect, which retries the connection using the supplied configuration.
//   - Healthcheck, a probe for liveness / readiness endpoints.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	store := redis.NewStoreWithConfig(client, cfg)
//	_ = store.Put(ctx, "session:abc", `{"visits":1}`, kv.WithExpirationTTL(time.Hour))
//
// # Errors
//
// Connection problems are reported with sentinel errors (ErrNotReady,
// ErrInvalidURL, ...) joined with the underlying go-redis
// error. A missing key is reported as kv.ErrNotFound.
package redis
