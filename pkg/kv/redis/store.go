package redis

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvsession/pkg/kv"
)

const defaultScanBatchSize = 1000

// Store implements kv.Store on top of Redis. Expiration is delegated to
// Redis key TTLs, so expired records disappear without extra bookkeeping.
type Store struct {
	db            redis.UniversalClient
	scanBatchSize int64
	now           func() time.Time
}

// NewStore wraps a go-redis client.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		db:            client,
		scanBatchSize: defaultScanBatchSize,
		now:           time.Now,
	}
}

// NewStoreWithConfig wraps a go-redis client honouring cfg.ScanBatchSize.
func NewStoreWithConfig(client redis.UniversalClient, cfg Config) *Store {
	s := NewStore(client)
	if cfg.ScanBatchSize > 0 {
		s.scanBatchSize = int64(cfg.ScanBatchSize)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", kv.ErrNotFound
	}

	val, err := s.db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", kv.ErrNotFound
	}
	return val, err
}

// Put stores the value; a zero ExpirationTTL stores it without expiration.
func (s *Store) Put(ctx context.Context, key, value string, opts ...kv.PutOption) error {
	if key == "" {
		return kv.ErrEmptyKey
	}
	o := kv.ApplyPutOptions(opts...)
	return s.db.Set(ctx, key, value, o.ExpirationTTL).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, key).Err()
}

// List walks the keyspace with SCAN to avoid blocking Redis, then resolves
// remaining TTLs in a single pipeline.
func (s *Store) List(ctx context.Context, prefix string) ([]kv.Key, error) {
	pattern := escapeGlob(prefix) + "*"

	var names []string
	var cursor uint64
	for {
		batch, next, err := s.db.Scan(ctx, cursor, pattern, s.scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		names = append(names, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(names) == 0 {
		return nil, nil
	}
	slices.Sort(names)
	names = slices.Compact(names)

	pipe := s.db.Pipeline()
	ttls := make([]*redis.DurationCmd, len(names))
	for i, name := range names {
		ttls[i] = pipe.PTTL(ctx, name)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	now := s.now()
	keys := make([]kv.Key, 0, len(names))
	for i, name := range names {
		ttl := ttls[i].Val()
		// -2: key vanished between SCAN and PTTL.
		if ttl == -2 {
			continue
		}
		key := kv.Key{Name: name}
		if ttl > 0 {
			key.Expiration = now.Add(ttl)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}

// Close terminates the Redis connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// escapeGlob escapes SCAN MATCH metacharacters so prefixes are matched literally.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
