package fakebackend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

func newClient(t *testing.T, srv *Server) *api.Client {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	client, err := api.New(ts.URL + Prefix + "/")
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return client
}

func TestDemoEndpoints(t *testing.T) {
	srv := New(Demo())
	client := newClient(t, srv)
	ctx := context.Background()

	movies, err := client.Movies(ctx)
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	if len(movies) != len(demoMovies) || movies[0].ClusterCount != clustersPerMovie {
		t.Fatalf("unexpected movies %+v", movies)
	}
	actors, err := client.Actors(ctx, movies[0].ID)
	if err != nil || len(actors) == 0 {
		t.Fatalf("actors: %v (%d)", err, len(actors))
	}
	payload, err := client.Cluster(ctx, movies[0].ID, 0)
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}
	if len(payload.Images) == 0 || len(payload.PredictedActors) != 1 {
		t.Fatalf("unexpected cluster payload %+v", payload)
	}
	if payload.Label != nil || payload.LabelTime != nil {
		t.Fatalf("fresh cluster should have no label")
	}
}

func TestSaveUpdatesClusterAndProgress(t *testing.T) {
	srv := New(Demo())
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv.SetClock(func() time.Time { return stamp })
	client := newClient(t, srv)
	ctx := context.Background()
	movieID := demoMovies[0].id

	req := label.SaveRequest{
		Label:  label.Ptr(label.ActorID(movieID*100 + 2)),
		Images: []label.Image{{URL: "x.jpg", Status: label.StatusInvalid}},
		Status: label.ClusterMixed,
	}
	for i := 0; i < 2; i++ {
		if err := client.SaveCluster(ctx, movieID, 3, req); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	movie, err := client.Movie(ctx, movieID)
	if err != nil {
		t.Fatalf("movie: %v", err)
	}
	if movie.LabeledClusterCount != 1 {
		t.Fatalf("expected 1 labeled cluster after repeated saves, got %d", movie.LabeledClusterCount)
	}
	payload, err := client.Cluster(ctx, movieID, 3)
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}
	if payload.Label == nil || *payload.Label != *req.Label || payload.Status != label.ClusterMixed {
		t.Fatalf("save not reflected: %+v", payload)
	}
	if payload.LabelTime == nil || !payload.LabelTime.Equal(stamp) {
		t.Fatalf("unexpected label time %v", payload.LabelTime)
	}
	if len(srv.Saves()) != 2 {
		t.Fatalf("expected 2 recorded saves")
	}
}

func TestNotFoundAndFailures(t *testing.T) {
	srv := New(Demo())
	client := newClient(t, srv)
	ctx := context.Background()

	var statusErr *api.StatusError
	if _, err := client.Cluster(ctx, demoMovies[0].id, 999); !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	srv.FailSaves(true)
	err := client.SaveCluster(ctx, demoMovies[0].id, 0, label.SaveRequest{})
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError || statusErr.ErrorCode != "save_failed" {
		t.Fatalf("expected save failure, got %v", err)
	}
	srv.FailLoads(true)
	if _, err := client.Cluster(ctx, demoMovies[0].id, 0); err == nil {
		t.Fatalf("expected load failure")
	}
}

func TestRequestsAreRecorded(t *testing.T) {
	srv := New(Demo())
	client := newClient(t, srv)
	_, _ = client.Movies(context.Background())
	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0] != "GET /api/movies" {
		t.Fatalf("unexpected requests %v", reqs)
	}
}
