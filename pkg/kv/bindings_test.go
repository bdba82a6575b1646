package kv_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/memory"
)

func TestBindings_Resolve(t *testing.T) {
	t.Parallel()
	store := memory.New()
	b := kv.Bindings{"SESSION_DATASTORE": store, "nil": nil}

	got, err := b.Resolve("SESSION_DATASTORE")
	require.NoError(t, err)
	assert.Same(t, store, got)

	for _, name := range []string{"", "missing", "nil"} {
		_, err := b.Resolve(name)
		assert.ErrorIs(t, err, kv.ErrBindingNotFound, name)
	}

	var empty kv.Bindings
	_, err = empty.Resolve("SESSION_DATASTORE")
	assert.ErrorIs(t, err, kv.ErrBindingNotFound)
}

func TestBindings_Context(t *testing.T) {
	t.Parallel()

	_, ok := kv.BindingsFromContext(context.Background())
	assert.False(t, ok)

	b := kv.Bindings{"a": memory.New()}
	got, ok := kv.BindingsFromContext(kv.WithBindings(context.Background(), b))
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestBindings_Middleware(t *testing.T) {
	t.Parallel()
	store := memory.New()
	b := kv.Bindings{"SESSION_DATASTORE": store}

	var resolved kv.Store
	handler := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bindings, ok := kv.BindingsFromContext(r.Context())
		require.True(t, ok)
		resolved, _ = bindings.Resolve("SESSION_DATASTORE")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Same(t, store, resolved)
}
