package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/kvsession/pkg/cookie"
	"github.com/dmitrymomot/kvsession/pkg/kv"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// ErrorHandler renders configuration failures of the middleware.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithStore binds a datastore directly, bypassing name resolution
func WithStore(store kv.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithBindings sets fallback bindings used when the request context carries none
func WithBindings(bindings kv.Bindings) Option {
	return func(m *Manager) {
		m.bindings = bindings
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithDatastore sets the binding name used to resolve the datastore
func WithDatastore(name string) Option {
	return func(m *Manager) {
		m.config.Datastore = name
	}
}

// WithPrefix sets the store key prefix
func WithPrefix(prefix string) Option {
	return func(m *Manager) {
		m.config.Prefix = prefix
	}
}

// WithTTL sets the session lifetime in seconds
func WithTTL(seconds int) Option {
	return func(m *Manager) {
		m.config.TTL = seconds
	}
}

// WithSecureCookies toggles the Secure cookie attribute
func WithSecureCookies(secure bool) Option {
	return func(m *Manager) {
		m.config.SecureCookies = secure
	}
}

// WithCookieManager sets the cookie manager whose defaults apply to the session cookie
func WithCookieManager(cookieMgr *cookie.Manager) Option {
	return func(m *Manager) {
		if cookieMgr != nil {
			m.cookieManager = cookieMgr
		}
	}
}

// WithLogger sets the logger for datastore and configuration failures
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source used for cookie expiry
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithErrorHandler overrides the response written when no datastore resolves
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}
