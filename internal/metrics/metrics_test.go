package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("cluster", 20*time.Millisecond, nil)
	m.ObserveRequest("cluster", 30*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("cluster", "ok")); got != 1 {
		t.Fatalf("expected 1 ok request, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("cluster", "error")); got != 1 {
		t.Fatalf("expected 1 failed request, got %v", got)
	}
}

func TestSaveCounters(t *testing.T) {
	m := New()
	m.SaveSubmitted()
	m.SaveSubmitted()
	m.SaveFailed()
	m.FlushSkipped()
	m.Navigated(-1)
	m.Navigated(1)
	m.Navigated(1)
	if got := testutil.ToFloat64(m.savesTotal.WithLabelValues("submitted")); got != 2 {
		t.Fatalf("expected 2 submitted saves, got %v", got)
	}
	if got := testutil.ToFloat64(m.flushSkipped); got != 1 {
		t.Fatalf("expected 1 skipped flush, got %v", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("next")); got != 2 {
		t.Fatalf("expected 2 forward navigations, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("movies", time.Millisecond, nil)
	m.SaveSubmitted()
	m.SaveFailed()
	m.FlushSkipped()
	m.ClusterLoaded()
	m.Navigated(1)
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.ClusterLoaded()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "labeler_clusters_loaded_total 1") {
		t.Fatalf("expected clusters loaded counter in body:\n%s", body)
	}
}
