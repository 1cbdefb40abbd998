package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
	err []error
}

func (r *recordingObserver) ObserveRequest(op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.err = append(r.err, err)
}

func TestNewRequiresAbsoluteURL(t *testing.T) {
	if _, err := api.New(""); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := api.New("localhost/api"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestOriginStripsAPIPrefix(t *testing.T) {
	client, err := api.New("http://example.com:5000/api/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := client.Origin(); got != "http://example.com:5000" {
		t.Fatalf("unexpected origin %q", got)
	}
	if got := client.BaseURL(); got != "http://example.com:5000/api" {
		t.Fatalf("unexpected base url %q", got)
	}
}

func TestMoviesDecodesSnakeCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/movies" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get(api.RequestIDHeader) == "" {
			t.Fatalf("expected request id header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":121614,"name":"Heat","year":1995,"n_clusters":12,"n_labeled_clusters":3,"fps":23.976}]`))
	}))
	t.Cleanup(server.Close)

	obs := &recordingObserver{}
	client, err := api.New(server.URL+"/api/", api.WithObserver(obs))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	movies, err := client.Movies(context.Background())
	if err != nil {
		t.Fatalf("Movies returned error: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected one movie, got %d", len(movies))
	}
	m := movies[0]
	if m.ID != 121614 || m.ClusterCount != 12 || m.LabeledClusterCount != 3 || m.Year != 1995 {
		t.Fatalf("unexpected movie %#v", m)
	}
	if len(obs.ops) != 1 || obs.ops[0] != api.OpMovies || obs.err[0] != nil {
		t.Fatalf("unexpected observations %#v %#v", obs.ops, obs.err)
	}
}

func TestClusterConvertsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/faces/clusters/7/2" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"cluster_id": 2,
			"label": 31,
			"label_time": 1600000000.5,
			"status": "bogus",
			"n_trajectories": 4,
			"predicted_actors": [31, 40],
			"images": [
				{"url": "images/7:1:1_2_3_4.jpeg", "full_frame_url": "images/frames/7/1_1-2-3-4.jpeg", "status": "invalid", "frame_index": 1},
				{"url": "images/7:2:1_2_3_4.jpeg", "frame_index": 2, "approved": false}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL + "/api")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	payload, err := client.Cluster(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}
	if payload.Status != label.ClusterLabeled {
		t.Fatalf("expected invalid status to default to labeled, got %q", payload.Status)
	}
	if payload.Label == nil || *payload.Label != 31 {
		t.Fatalf("expected label 31, got %v", payload.Label)
	}
	if payload.LabelTime == nil || payload.LabelTime.Unix() != 1600000000 {
		t.Fatalf("unexpected label time %v", payload.LabelTime)
	}
	if len(payload.Images) != 2 || payload.Images[0].Status != label.StatusInvalid || payload.Images[1].Status != label.StatusDifferent {
		t.Fatalf("unexpected images %#v", payload.Images)
	}
	if len(payload.PredictedActors) != 2 || payload.PredictedActors[1] != 40 {
		t.Fatalf("unexpected predictions %#v", payload.PredictedActors)
	}
}

func TestSaveClusterPostsBody(t *testing.T) {
	var got api.SaveCluster
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/faces/clusters/7/3" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL + "/api/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	req := label.SaveRequest{
		Label:     label.Ptr(9),
		Images:    []label.Image{{URL: "a.jpeg", Status: label.StatusDifferent}},
		ElapsedMs: 1500,
		Status:    label.ClusterMixed,
	}
	if err := client.SaveCluster(context.Background(), 7, 3, req); err != nil {
		t.Fatalf("SaveCluster returned error: %v", err)
	}
	if got.Label == nil || *got.Label != 9 || got.Time != 1500 || got.Status != "mixed" {
		t.Fatalf("unexpected body %#v", got)
	}
	if len(got.Images) != 1 || got.Images[0].Status != "different" {
		t.Fatalf("unexpected images %#v", got.Images)
	}
}

func TestStatusErrorDecodesBackendBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Couldn't save cluster info to database.","code":"DATABASE_WRITE_ERROR"}`))
	}))
	t.Cleanup(server.Close)

	obs := &recordingObserver{}
	client, err := api.New(server.URL+"/api/", api.WithObserver(obs))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.SaveCluster(context.Background(), 1, 1, label.SaveRequest{})
	var serr *api.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.Code != http.StatusInternalServerError || serr.ErrorCode != "DATABASE_WRITE_ERROR" {
		t.Fatalf("unexpected status error %#v", serr)
	}
	if len(obs.err) != 1 || obs.err[0] == nil {
		t.Fatalf("expected observer to see the error")
	}
}

func TestTimeoutIsApplied(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := api.New(server.URL+"/api/", api.WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Movies(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestTimeoutLeavesCallerClientAlone(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	orders := map[string]func(*http.Client) []api.Option{
		"timeout first": func(hc *http.Client) []api.Option {
			return []api.Option{api.WithTimeout(50 * time.Millisecond), api.WithHTTPClient(hc)}
		},
		"client first": func(hc *http.Client) []api.Option {
			return []api.Option{api.WithHTTPClient(hc), api.WithTimeout(50 * time.Millisecond)}
		},
	}
	for name, opts := range orders {
		shared := &http.Client{}
		client, err := api.New(server.URL+"/api/", opts(shared)...)
		if err != nil {
			t.Fatalf("%s: New returned error: %v", name, err)
		}
		if _, err := client.Movies(context.Background()); err == nil {
			t.Fatalf("%s: expected timeout error", name)
		}
		if shared.Timeout != 0 {
			t.Fatalf("%s: expected caller's client untouched, got timeout %v", name, shared.Timeout)
		}
	}
}

func TestWrittenHookFiresBeforeResponse(t *testing.T) {
	fired := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Errorf("request reached the server before the hook fired")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, err := api.New(server.URL + "/api")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := api.WithWrittenHook(context.Background(), func() { fired <- struct{}{} })
	if err := client.SaveCluster(ctx, 1, 0, label.SaveRequest{Status: label.ClusterLabeled}); err != nil {
		t.Fatalf("SaveCluster returned error: %v", err)
	}
}

func TestRequestWrittenWithoutHook(t *testing.T) {
	api.RequestWritten(context.Background())
	called := false
	api.RequestWritten(api.WithWrittenHook(context.Background(), func() { called = true }))
	if !called {
		t.Fatal("expected hook to run")
	}
}
