// Package metrics records client-side counters for the labeler and serves them
// for scraping.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 2 * time.Second

// Metrics holds the labeler's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	savesTotal     *prometheus.CounterVec
	flushSkipped   prometheus.Counter
	clustersLoaded prometheus.Counter
	navigations    *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labeler_backend_requests_total",
		Help: "Backend requests by operation and result",
	}, []string{"op", "result"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labeler_backend_request_seconds",
		Help:    "Backend request latency by operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	savesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labeler_cluster_saves_total",
		Help: "Cluster saves by result",
	}, []string{"result"})
	flushSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "labeler_cluster_flush_skipped_total",
		Help: "Navigations that left a clean cluster without saving",
	})
	clustersLoaded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "labeler_clusters_loaded_total",
		Help: "Clusters applied to the session",
	})
	navigations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labeler_navigations_total",
		Help: "Cluster navigations by direction",
	}, []string{"direction"})

	registry.MustRegister(
		requestsTotal,
		requestLatency,
		savesTotal,
		flushSkipped,
		clustersLoaded,
		navigations,
	)

	return &Metrics{
		registry:       registry,
		requestsTotal:  requestsTotal,
		requestLatency: requestLatency,
		savesTotal:     savesTotal,
		flushSkipped:   flushSkipped,
		clustersLoaded: clustersLoaded,
		navigations:    navigations,
	}
}

// ObserveRequest records one backend call. It satisfies api.Observer.
func (m *Metrics) ObserveRequest(op string, latency time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.requestsTotal.WithLabelValues(op, result).Inc()
	m.requestLatency.WithLabelValues(op).Observe(latency.Seconds())
}

// SaveSubmitted counts a save handed to the backend.
func (m *Metrics) SaveSubmitted() {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues("submitted").Inc()
}

// SaveFailed counts a save the backend rejected or never received.
func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues("failed").Inc()
}

// FlushSkipped counts a navigation away from a clean cluster.
func (m *Metrics) FlushSkipped() {
	if m == nil {
		return
	}
	m.flushSkipped.Inc()
}

// ClusterLoaded counts a cluster applied to the session.
func (m *Metrics) ClusterLoaded() {
	if m == nil {
		return
	}
	m.clustersLoaded.Inc()
}

// Navigated counts one navigation step.
func (m *Metrics) Navigated(delta int) {
	if m == nil {
		return
	}
	direction := "next"
	switch {
	case delta < 0:
		direction = "previous"
	case delta == 0:
		direction = "reload"
	}
	m.navigations.WithLabelValues(direction).Inc()
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns a router serving /metrics.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP)
	return r
}

// Serve exposes the metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: m.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
