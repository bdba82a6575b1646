package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/kvsession/pkg/logger"
)

// Middleware starts a session for every request and publishes the handle
// into the request context (see FromContext). When no datastore resolves,
// the request is aborted with 500 before next runs.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Start(w, r)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "session: middleware misconfigured", logger.Error(err))
			m.errorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, ErrNoStore) {
		http.Error(w, "Session datastore was not found", http.StatusInternalServerError)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
