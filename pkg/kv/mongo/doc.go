// Package mongo provides a MongoDB-backed kv.Store and connection helpers.
//
// Each record is a document {_id: key, value, expires_at, updated_at} in a
// single collection. EnsureIndexes creates a TTL index on expires_at so the
// server removes stale records on its own schedule.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := mongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection))
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
package mongo
