package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/kvsession/pkg/kv"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements kv.Store on a PostgreSQL table created by Migrate.
// Expired rows are invisible to reads and removed by DeleteExpired.
type Store struct {
	db  DBTX
	now func() time.Time

	getSQL           string
	putSQL           string
	deleteSQL        string
	listSQL          string
	deleteExpiredSQL string
}

type Option func(*Store) error

// WithTable overrides the table name (default "kv_entries").
func WithTable(name string) Option {
	return func(s *Store) error {
		if strings.TrimSpace(name) == "" {
			return ErrInvalidTableName
		}
		s.prepare(name)
		return nil
	}
}

// WithClock overrides the time source used for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

func NewStore(db DBTX, opts ...Option) (*Store, error) {
	s := &Store{db: db, now: time.Now}
	s.prepare("kv_entries")

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) prepare(table string) {
	t := pgx.Identifier{table}.Sanitize()

	s.getSQL = fmt.Sprintf(
		`SELECT value FROM %s WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`, t)
	s.putSQL = fmt.Sprintf(
		`INSERT INTO %s (key, value, expires_at, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`, t)
	s.deleteSQL = fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, t)
	s.listSQL = fmt.Sprintf(
		`SELECT key, expires_at FROM %s
		WHERE key LIKE $1 ESCAPE '\' AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY key`, t)
	s.deleteExpiredSQL = fmt.Sprintf(
		`DELETE FROM %s WHERE expires_at IS NOT NULL AND expires_at <= $1`, t)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, s.getSQL, key, s.now()).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", kv.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts ...kv.PutOption) error {
	if key == "" {
		return kv.ErrEmptyKey
	}

	now := s.now()
	o := kv.ApplyPutOptions(opts...)

	var expiresAt *time.Time
	if o.ExpirationTTL > 0 {
		t := now.Add(o.ExpirationTTL)
		expiresAt = &t
	}

	_, err := s.db.Exec(ctx, s.putSQL, key, value, expiresAt, now)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, s.deleteSQL, key)
	return err
}

func (s *Store) List(ctx context.Context, prefix string) ([]kv.Key, error) {
	rows, err := s.db.Query(ctx, s.listSQL, escapeLike(prefix)+"%", s.now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []kv.Key
	for rows.Next() {
		var (
			name      string
			expiresAt *time.Time
		)
		if err := rows.Scan(&name, &expiresAt); err != nil {
			return nil, err
		}
		key := kv.Key{Name: name}
		if expiresAt != nil {
			key.Expiration = *expiresAt
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// DeleteExpired purges expired rows and reports how many were removed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, s.deleteExpiredSQL, s.now())
	if err != nil {
		return 0, fmt.Errorf("pg: delete expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
