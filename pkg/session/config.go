package session

const (
	DefaultCookieName = "__session"
	DefaultDatastore  = "SESSION_DATASTORE"
	DefaultPrefix     = "session"
	DefaultTTL        = 2592000 // 30 days in seconds

	// MinTTL is the smallest TTL, in seconds, that enables expiration.
	// Smaller values produce browser-session cookies and non-expiring records.
	MinTTL = 60
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "__session")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`

	// Datastore is the kv binding name resolved when no store is set directly
	Datastore string `env:"SESSION_DATASTORE" envDefault:"SESSION_DATASTORE"`

	// Prefix namespaces store keys as "{prefix}:{id}"
	Prefix string `env:"SESSION_PREFIX" envDefault:"session"`

	// TTL in seconds for both the cookie and the store record (below 60 disables expiration)
	TTL int `env:"SESSION_TTL" envDefault:"2592000"`

	// SecureCookies enables the Secure flag on session cookies
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName: DefaultCookieName,
		Datastore:  DefaultDatastore,
		Prefix:     DefaultPrefix,
		TTL:        DefaultTTL,
	}
}

// withDefaults fills empty name fields. TTL is left as given.
func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.Datastore == "" {
		c.Datastore = DefaultDatastore
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	return c
}

// withDefaultTTL maps an unset TTL to DefaultTTL. Negative values and
// values below MinTTL are kept and disable expiration.
func (c Config) withDefaultTTL() Config {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	return c
}

// ExpirationEnabled reports whether TTL drives cookie and record expiration.
func (c Config) ExpirationEnabled() bool {
	return c.TTL >= MinTTL
}

// NewFromConfig creates a new Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
