package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/kvsession/pkg/kv"
)

type document struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// Store implements kv.Store on a MongoDB collection. A TTL index on
// expires_at lets the server purge records; because the TTL monitor runs
// periodically, reads also filter expired documents.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for expiration.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(coll *mongo.Collection, opts ...Option) *Store {
	s := &Store{coll: coll, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the TTL index on expires_at.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
	})
	return err
}

func (s *Store) liveFilter(now time.Time) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "expires_at", Value: bson.D{{Key: "$exists", Value: false}}}},
		bson.D{{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}}},
	}}}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	filter := bson.D{{Key: "_id", Value: key}}
	filter = append(filter, s.liveFilter(s.now())...)

	var doc document
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", kv.ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts ...kv.PutOption) error {
	if key == "" {
		return kv.ErrEmptyKey
	}

	now := s.now()
	o := kv.ApplyPutOptions(opts...)
	doc := document{Key: key, Value: value, UpdatedAt: now}
	if o.ExpirationTTL > 0 {
		t := now.Add(o.ExpirationTTL)
		doc.ExpiresAt = &t
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

func (s *Store) List(ctx context.Context, prefix string) ([]kv.Key, error) {
	filter := bson.D{{Key: "_id", Value: bson.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}}
	filter = append(filter, s.liveFilter(s.now())...)

	cursor, err := s.coll.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetProjection(bson.D{{Key: "value", Value: 0}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var keys []kv.Key
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		key := kv.Key{Name: doc.Key}
		if doc.ExpiresAt != nil {
			key.Expiration = *doc.ExpiresAt
		}
		keys = append(keys, key)
	}

	return keys, cursor.Err()
}
