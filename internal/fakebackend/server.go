// Package fakebackend is an in-memory stand-in for the labeling REST backend.
// It serves the same endpoints under /api and is used by tests and by the
// -demo mode.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
)

// Prefix is the path the API is mounted under.
const Prefix = "/api"

// SaveRecord is one accepted POST.
type SaveRecord struct {
	MovieID   int64
	ClusterID int
	Body      api.SaveCluster
}

// Server holds the backend state.
type Server struct {
	mu        sync.Mutex
	movies    []api.Movie
	actors    map[int64][]api.Actor
	clusters  map[int64][]api.Cluster
	saves     []SaveRecord
	requests  []string
	failSaves bool
	failLoads bool
	now       func() time.Time
	router    chi.Router
}

// New returns a server seeded with ds.
func New(ds Dataset) *Server {
	s := &Server{
		actors:   make(map[int64][]api.Actor),
		clusters: make(map[int64][]api.Cluster),
		now:      time.Now,
	}
	s.movies = append(s.movies, ds.Movies...)
	for id, actors := range ds.Actors {
		s.actors[id] = append([]api.Actor(nil), actors...)
	}
	for id, clusters := range ds.Clusters {
		s.clusters[id] = append([]api.Cluster(nil), clusters...)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.recordRequest)
	r.Route(Prefix, func(r chi.Router) {
		r.Get("/movies", s.listMovies)
		r.Get("/movies/{movieID}", s.getMovie)
		r.Get("/actors/{movieID}", s.listActors)
		r.Route("/faces/clusters/{movieID}/{clusterID}", func(r chi.Router) {
			r.Get("/", s.getCluster)
			r.Post("/", s.saveCluster)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetClock overrides the time stamped on saved clusters.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
}

// FailSaves makes every POST answer 500.
func (s *Server) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves = fail
}

// FailLoads makes every cluster GET answer 500.
func (s *Server) FailLoads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoads = fail
}

// Saves returns the accepted saves in arrival order.
func (s *Server) Saves() []SaveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SaveRecord(nil), s.saves...)
}

// Requests returns "METHOD path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Cluster returns the stored wire cluster.
func (s *Server) Cluster(movieID int64, clusterID int) (api.Cluster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clusters := s.clusters[movieID]
	if clusterID < 0 || clusterID >= len(clusters) {
		return api.Cluster{}, false
	}
	return clusters[clusterID], true
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	movies := append([]api.Movie(nil), s.movies...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == movieID {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "movie_not_found", fmt.Sprintf("movie %d not found", movieID))
}

func (s *Server) listActors(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	actors, found := s.actors[movieID]
	actors = append([]api.Actor(nil), actors...)
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "movie_not_found", fmt.Sprintf("movie %d not found", movieID))
		return
	}
	writeJSON(w, http.StatusOK, actors)
}

func (s *Server) getCluster(w http.ResponseWriter, r *http.Request) {
	movieID, clusterID, ok := clusterParams(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLoads {
		writeError(w, http.StatusInternalServerError, "load_failed", "cluster storage unavailable")
		return
	}
	clusters := s.clusters[movieID]
	if clusterID < 0 || clusterID >= len(clusters) {
		writeError(w, http.StatusNotFound, "cluster_not_found", fmt.Sprintf("cluster %d/%d not found", movieID, clusterID))
		return
	}
	writeJSON(w, http.StatusOK, clusters[clusterID])
}

func (s *Server) saveCluster(w http.ResponseWriter, r *http.Request) {
	movieID, clusterID, ok := clusterParams(w, r)
	if !ok {
		return
	}
	var body api.SaveCluster
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		writeError(w, http.StatusInternalServerError, "save_failed", "cluster storage unavailable")
		return
	}
	clusters := s.clusters[movieID]
	if clusterID < 0 || clusterID >= len(clusters) {
		writeError(w, http.StatusNotFound, "cluster_not_found", fmt.Sprintf("cluster %d/%d not found", movieID, clusterID))
		return
	}
	stored := clusters[clusterID]
	firstSave := stored.LabelTime == nil
	stored.Label = body.Label
	stored.Status = body.Status
	stored.Images = append([]api.Image(nil), body.Images...)
	stamp := float64(s.now().UnixNano()) / float64(time.Second)
	stored.LabelTime = &stamp
	clusters[clusterID] = stored
	if firstSave {
		for i := range s.movies {
			if s.movies[i].ID == movieID {
				s.movies[i].LabeledClusterCount++
			}
		}
	}
	s.saves = append(s.saves, SaveRecord{MovieID: movieID, ClusterID: clusterID, Body: body})
	writeJSON(w, http.StatusOK, api.Ack{Status: "ok"})
}

func movieParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_movie", "movie id must be an integer")
		return 0, false
	}
	return movieID, true
}

func clusterParams(w http.ResponseWriter, r *http.Request) (int64, int, bool) {
	movieID, ok := movieParam(w, r)
	if !ok {
		return 0, 0, false
	}
	clusterID, err := strconv.Atoi(chi.URLParam(r, "clusterID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_cluster", "cluster id must be an integer")
		return 0, 0, false
	}
	return movieID, clusterID, true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, api.ErrorBody{Error: message, Code: errCode})
}
