package kv

import (
	"context"
	"fmt"
	"net/http"
)

// Bindings maps binding names to stores, e.g. "SESSION_DATASTORE" -> redis store.
type Bindings map[string]Store

// Resolve returns the store bound under name.
func (b Bindings) Resolve(name string) (Store, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty binding name", ErrBindingNotFound)
	}
	store, ok := b[name]
	if !ok || store == nil {
		return nil, fmt.Errorf("%w: %q", ErrBindingNotFound, name)
	}
	return store, nil
}

// Middleware publishes the bindings into the request context so that
// downstream components can resolve stores by name.
func (b Bindings) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithBindings(r.Context(), b)))
	})
}

type bindingsContextKey struct{}

// WithBindings adds bindings to the context
func WithBindings(ctx context.Context, b Bindings) context.Context {
	return context.WithValue(ctx, bindingsContextKey{}, b)
}

// BindingsFromContext retrieves bindings from the context
func BindingsFromContext(ctx context.Context) (Bindings, bool) {
	if ctx == nil {
		return nil, false
	}
	b, ok := ctx.Value(bindingsContextKey{}).(Bindings)
	return b, ok
}
