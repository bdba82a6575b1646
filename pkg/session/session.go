package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/dmitrymomot/kvsession/pkg/cookie"
	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/logger"
)

// Data is the JSON-serializable session payload.
type Data map[string]any

// Session is the per-request handle exposed to handlers. Handlers mutate
// Data directly and call Save to persist it. A Session must not be retained
// across requests.
type Session struct {
	ID   string
	Data Data

	isNew     bool
	destroyed bool

	key     string
	config  Config
	store   kv.Store
	cookies Cookies
	options []cookie.Option
	logger  *slog.Logger
}

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool {
	return s != nil && s.isNew
}

// Destroyed reports whether Destroy was called on this handle.
func (s *Session) Destroyed() bool {
	return s != nil && s.destroyed
}

// Save writes the current Data to the datastore, with the configured TTL
// when expiration is enabled. It can be called any number of times; the last
// call wins. Returns false if the data could not be encoded or written, and
// always after Destroy.
func (s *Session) Save(ctx context.Context) bool {
	if s == nil || s.destroyed || s.store == nil {
		return false
	}

	data := s.Data
	if data == nil {
		data = Data{}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "session: failed to encode data",
			logger.SessionPrefix(s.config.Prefix),
			logger.Error(err),
		)
		return false
	}

	var opts []kv.PutOption
	if s.config.ExpirationEnabled() {
		opts = append(opts, kv.WithExpirationTTL(time.Duration(s.config.TTL)*time.Second))
	}

	if err := s.store.Put(ctx, s.key, string(payload), opts...); err != nil {
		s.logger.ErrorContext(ctx, "session: kv returned error",
			logger.Operation("put"),
			logger.SessionPrefix(s.config.Prefix),
			logger.Error(err),
		)
		return false
	}

	return true
}

// Destroy ends the session: the handle is cleared (ID "", empty Data, Save
// disabled), the client is told to drop the cookie and the datastore record
// is deleted. The cookie is cleared even when the delete fails. The result
// reflects the delete only; calling Destroy again returns false.
func (s *Session) Destroy(ctx context.Context) bool {
	if s == nil || s.destroyed {
		return false
	}

	s.ID = ""
	s.Data = Data{}
	s.destroyed = true

	if s.cookies != nil {
		s.cookies.Delete(s.config.CookieName, s.options...)
	}

	if err := s.store.Delete(ctx, s.key); err != nil {
		s.logger.ErrorContext(ctx, "session: kv returned error",
			logger.Operation("delete"),
			logger.SessionPrefix(s.config.Prefix),
			logger.Error(err),
		)
		return false
	}

	return true
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data. Numbers decoded from
// JSON arrive as float64 and are converted only when they are whole and
// fit in an int.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in session data. Call Save to persist it.
func (s *Session) Set(key string, value any) {
	if s == nil || s.destroyed {
		return
	}
	if s.Data == nil {
		s.Data = make(Data)
	}
	s.Data[key] = value
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(Data)
}
