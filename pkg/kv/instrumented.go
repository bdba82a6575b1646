package kv

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// Metrics holds the collectors shared by instrumented stores.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvsession",
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "Total number of key-value store operations",
		}, []string{"store", "op", "result"}), // result = "ok", "not_found", "error"
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kvsession",
			Subsystem: "kv",
			Name:      "operation_duration_seconds",
			Help:      "Key-value store operation latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"store", "op"}),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.duration)
	}

	return m
}

// Operations exposes the operation counter, mostly for tests and dashboards.
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

// InstrumentedStore records operation counts and latencies of the wrapped store.
type InstrumentedStore struct {
	next    Store
	name    string
	metrics *Metrics
}

// NewInstrumentedStore wraps next. name is used as the "store" label.
func NewInstrumentedStore(next Store, name string, metrics *Metrics) *InstrumentedStore {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &InstrumentedStore{next: next, name: name, metrics: metrics}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return v, err
}

func (s *InstrumentedStore) Put(ctx context.Context, key, value string, opts ...PutOption) error {
	start := time.Now()
	err := s.next.Put(ctx, key, value, opts...)
	s.observe("put", start, err)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *InstrumentedStore) List(ctx context.Context, prefix string) ([]Key, error) {
	start := time.Now()
	keys, err := s.next.List(ctx, prefix)
	s.observe("list", start, err)
	return keys, err
}

// Unwrap returns the underlying store.
func (s *InstrumentedStore) Unwrap() Store {
	return s.next
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	result := resultOK
	switch {
	case errors.Is(err, ErrNotFound):
		result = resultNotFound
	case err != nil:
		result = resultError
	}

	s.metrics.operations.WithLabelValues(s.name, op, result).Inc()
	s.metrics.duration.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
}
