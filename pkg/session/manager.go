package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/kvsession/pkg/cookie"
	"github.com/dmitrymomot/kvsession/pkg/kv"
)

// Manager holds the long-lived session configuration and builds one Engine
// per request.
type Manager struct {
	config        Config
	store         kv.Store
	bindings      kv.Bindings
	cookieManager *cookie.Manager
	logger        *slog.Logger
	now           func() time.Time
	errorHandler  ErrorHandler
}

// New creates a new session manager with the given options
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.config = m.config.withDefaults().withDefaultTTL()

	if m.cookieManager == nil {
		m.cookieManager = cookie.New()
	}
	if m.errorHandler == nil {
		m.errorHandler = defaultErrorHandler
	}

	return m
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Resolve returns the datastore for the request: the directly bound store
// if any, else the configured binding name looked up in the context
// bindings, then in the manager's own bindings.
func (m *Manager) Resolve(ctx context.Context) (kv.Store, error) {
	if m.store != nil {
		return m.store, nil
	}

	if bindings, ok := kv.BindingsFromContext(ctx); ok {
		if store, err := bindings.Resolve(m.config.Datastore); err == nil {
			return store, nil
		}
	}

	if store, err := m.bindings.Resolve(m.config.Datastore); err == nil {
		return store, nil
	}

	return nil, fmt.Errorf("%w: binding %q", ErrNoStore, m.config.Datastore)
}

// Engine initializes the session engine for the request.
func (m *Manager) Engine(w http.ResponseWriter, r *http.Request) (*Engine, error) {
	store, err := m.Resolve(r.Context())
	if err != nil {
		return nil, err
	}

	return NewEngine(m.cookieManager.Jar(w, r), store, m.config,
		WithEngineLogger(m.logger),
		WithEngineClock(m.now),
	)
}

// Start initializes the session for the request and loads its data.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) (*Session, error) {
	engine, err := m.Engine(w, r)
	if err != nil {
		return nil, err
	}
	return engine.Load(r.Context()), nil
}

// List returns the ids of live sessions in the resolved datastore.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	store, err := m.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	prefix := storeKey(m.config.Prefix, "")
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if id := strings.TrimPrefix(k.Name, prefix); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
