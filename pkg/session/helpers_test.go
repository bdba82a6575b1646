package session_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/memory"
	"github.com/dmitrymomot/kvsession/pkg/logger"
)

var errBackend = errors.New("backend unavailable")

// recordingStore wraps a memory store, counts calls and optionally fails them.
type recordingStore struct {
	*memory.Store

	mu      sync.Mutex
	calls   map[string]int
	lastTTL time.Duration
	failGet bool
	failPut bool
	failDel bool
}

func newRecordingStore(opts ...memory.Option) *recordingStore {
	return &recordingStore{Store: memory.New(opts...), calls: map[string]int{}}
}

func (s *recordingStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *recordingStore) record(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

func (s *recordingStore) Get(ctx context.Context, key string) (string, error) {
	s.record("get")
	if s.failGet {
		return "", errBackend
	}
	return s.Store.Get(ctx, key)
}

func (s *recordingStore) Put(ctx context.Context, key, value string, opts ...kv.PutOption) error {
	s.record("put")
	s.mu.Lock()
	s.lastTTL = kv.ApplyPutOptions(opts...).ExpirationTTL
	s.mu.Unlock()
	if s.failPut {
		return errBackend
	}
	return s.Store.Put(ctx, key, value, opts...)
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	s.record("delete")
	if s.failDel {
		return errBackend
	}
	return s.Store.Delete(ctx, key)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug)), buf
}

// client replays cookies between requests like a browser would, dropping
// cookies whose Expires has passed according to now.
type client struct {
	cookies map[string]*http.Cookie
	now     func() time.Time
}

func newClient() *client {
	return &client{cookies: map[string]*http.Cookie{}, now: time.Now}
}

func newClientWithClock(now func() time.Time) *client {
	c := newClient()
	c.now = now
	return c
}

func (c *client) do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, nil)
	for name, ck := range c.cookies {
		if !ck.Expires.IsZero() && !c.now().Before(ck.Expires) {
			delete(c.cookies, name)
			continue
		}
		r.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) value(name string) string {
	if ck, ok := c.cookies[name]; ok {
		return ck.Value
	}
	return ""
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	require.Failf(t, "cookie not set", "no Set-Cookie for %q", name)
	return nil
}

func memoryClock(c *fakeClock) memory.Option {
	return memory.WithClock(c.Now)
}
