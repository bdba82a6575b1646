package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/kvsession/pkg/httpserver"
	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/logger"
	"github.com/dmitrymomot/kvsession/pkg/session"
)

type routerDeps struct {
	log      *slog.Logger
	manager  *session.Manager
	bindings kv.Bindings
	checks   []httpserver.Check
	gatherer prometheus.Gatherer
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(d.log, d.checks...))
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(d.bindings.Middleware)

		r.Get("/sessions", listSessions(d.manager, d.log))

		r.Group(func(r chi.Router) {
			r.Use(d.manager.Middleware)
			r.Get("/", countVisit(d.log))
			r.Post("/logout", logout(d.log))
		})
	})

	return r
}

type sessionResponse struct {
	ID   string       `json:"id"`
	New  bool         `json:"new"`
	Data session.Data `json:"data"`
}

func countVisit(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session.MustFromContext(r.Context())

		visits, _ := s.GetInt("visits")
		s.Set("visits", visits+1)
		if !s.Save(r.Context()) {
			log.WarnContext(r.Context(), "session not saved")
		}

		writeJSON(w, log, http.StatusOK, sessionResponse{ID: s.ID, New: s.IsNew(), Data: s.Data})
	}
}

func logout(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session.MustFromContext(r.Context())
		deleted := s.Destroy(r.Context())
		writeJSON(w, log, http.StatusOK, map[string]bool{"deleted": deleted})
	}
}

func listSessions(m *session.Manager, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := m.List(r.Context())
		if err != nil {
			log.ErrorContext(r.Context(), "list sessions failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]int{"count": len(ids)})
	}
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("write response failed", logger.Error(err))
	}
}
