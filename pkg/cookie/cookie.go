package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const setCookieHeader = "Set-Cookie"

type Manager struct {
	defaults Options
}

func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		defaults: applyOptions(defaults, opts),
	}
}

// Defaults returns a copy of the attributes applied to every cookie.
func (m *Manager) Defaults() Options {
	return m.defaults
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.build(name, value, applyOptions(m.defaults, opts))
	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, err)
	}

	replaceSetCookie(w.Header(), c)
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete instructs the client to drop the cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	options.MaxAge = -1
	options.Expires = time.Unix(0, 0)

	replaceSetCookie(w.Header(), m.build(name, "", options))
}

func (m *Manager) build(name, value string, o Options) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Expires:  o.Expires,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

// replaceSetCookie drops Set-Cookie directives already queued for the same
// cookie name, so a response carries one directive per name.
func replaceSetCookie(h http.Header, c *http.Cookie) {
	serialized := c.String()
	if serialized == "" {
		return
	}

	existing := h.Values(setCookieHeader)
	kept := make([]string, 0, len(existing)+1)
	for _, v := range existing {
		if n, _, _ := strings.Cut(v, "="); n == c.Name {
			continue
		}
		kept = append(kept, v)
	}
	kept = append(kept, serialized)

	h[setCookieHeader] = kept
}

// Jar binds a Manager to a single request/response pair.
type Jar struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request
}

func (m *Manager) Jar(w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{m: m, w: w, r: r}
}

// Get returns the value sent by the client. ok is true whenever the cookie
// is present, even with an empty value.
func (j *Jar) Get(name string) (string, bool) {
	v, err := j.m.Get(j.r, name)
	if err != nil {
		return "", false
	}
	return v, true
}

func (j *Jar) Set(name, value string, opts ...Option) error {
	return j.m.Set(j.w, name, value, opts...)
}

func (j *Jar) Delete(name string, opts ...Option) {
	j.m.Delete(j.w, name, opts...)
}
