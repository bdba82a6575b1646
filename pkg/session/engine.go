package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/kvsession/pkg/cookie"
	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/logger"
)

// Cookies reads and writes cookies of the current request/response pair.
// *cookie.Jar implements it.
type Cookies interface {
	Get(name string) (string, bool)
	Set(name, value string, opts ...cookie.Option) error
	Delete(name string, opts ...cookie.Option)
}

// Engine drives the session lifecycle of a single request. It is not safe
// for concurrent use and must not outlive the request.
type Engine struct {
	cookies Cookies
	store   kv.Store
	config  Config
	logger  *slog.Logger
	now     func() time.Time

	id    string
	isNew bool
	data  Data
}

type EngineOption func(*Engine)

// WithEngineLogger sets the logger used to report datastore failures.
func WithEngineLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEngineClock overrides the time source used for cookie expiry.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine initializes a session from the request cookie: an existing id is
// adopted verbatim, otherwise a new one is generated. A cookie that is present
// but empty gets a fresh id without marking the session new. The cookie is
// rewritten on every call, which slides its expiry forward.
//
// cfg.TTL is used as given, so 0 disables expiration. A nil store returns
// ErrNoStore.
func NewEngine(cookies Cookies, store kv.Store, cfg Config, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if cookies == nil {
		return nil, ErrNoCookies
	}

	e := &Engine{
		cookies: cookies,
		store:   store,
		config:  cfg.withDefaults(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	id, ok := e.cookies.Get(e.config.CookieName)
	e.isNew = !ok
	if ok && id != "" {
		e.id = id
	} else {
		e.id = GenerateID()
	}

	if err := e.updateCookie(); err != nil {
		return nil, err
	}

	return e, nil
}

// ID returns the session id.
func (e *Engine) ID() string { return e.id }

// IsNew reports whether the request carried no session cookie.
func (e *Engine) IsNew() bool { return e.isNew }

// Key returns the datastore key "{prefix}:{id}".
func (e *Engine) Key() string { return storeKey(e.config.Prefix, e.id) }

func storeKey(prefix, id string) string {
	return prefix + ":" + id
}

func (e *Engine) cookieOptions() []cookie.Option {
	opts := []cookie.Option{
		cookie.WithHTTPOnly(true),
		cookie.WithPath("/"),
	}
	if e.config.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	return opts
}

func (e *Engine) updateCookie() error {
	opts := e.cookieOptions()
	if e.config.ExpirationEnabled() {
		opts = append(opts, cookie.WithExpires(e.now().Add(time.Duration(e.config.TTL)*time.Second)))
	}

	if err := e.cookies.Set(e.config.CookieName, e.id, opts...); err != nil {
		return errors.Join(ErrCookieWrite, err)
	}
	return nil
}

// Load materializes the session handle. New sessions skip the datastore.
// Missing, undecodable or non-object records and datastore errors all yield
// empty data; failures are logged, never returned.
func (e *Engine) Load(ctx context.Context) *Session {
	e.data = Data{}

	if !e.isNew {
		e.data = e.fetch(ctx)
	}

	return &Session{
		ID:      e.id,
		Data:    e.data,
		isNew:   e.isNew,
		key:     e.Key(),
		config:  e.config,
		store:   e.store,
		cookies: e.cookies,
		options: e.cookieOptions(),
		logger:  e.logger,
	}
}

func (e *Engine) fetch(ctx context.Context) Data {
	raw, err := e.store.Get(ctx, e.Key())
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			e.logger.ErrorContext(ctx, "session: kv returned error",
				logger.Operation("get"),
				logger.SessionPrefix(e.config.Prefix),
				logger.Error(err),
			)
		}
		return Data{}
	}

	if raw == "" {
		return Data{}
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		e.logger.WarnContext(ctx, "session: stored data is not a JSON object",
			logger.SessionPrefix(e.config.Prefix),
			logger.Error(err),
		)
		return Data{}
	}
	if data == nil {
		return Data{}
	}

	return data
}
