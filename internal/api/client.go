// Package api is the REST client for the labeling backend. Wire types use the
// backend's snake_case field names; convert.go maps them onto internal/label so
// the case conversion stays at this boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/google/uuid"
)

// DefaultTimeout bounds each request made through the default HTTP client.
const DefaultTimeout = 2 * time.Second

// RequestIDHeader carries a per-request id so client and backend logs line up.
const RequestIDHeader = "X-Request-ID"

// Operation names reported to observers.
const (
	OpMovies      = "movies"
	OpMovie       = "movie"
	OpActors      = "actors"
	OpCluster     = "cluster"
	OpSaveCluster = "save_cluster"
)

// Observer receives one callback per completed request.
type Observer interface {
	ObserveRequest(op string, latency time.Duration, err error)
}

// Client talks to the labeling backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	observer   Observer
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the HTTP
// client, so a client passed to WithHTTPClient is never modified, and the
// order of the two options does not matter.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithObserver registers a request observer (metrics).
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// New creates a backend client rooted at baseURL (for example
// http://localhost:5000/api/).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.timeout > 0 {
		copied := *client.httpClient
		copied.Timeout = client.timeout
		client.httpClient = &copied
	}
	return client, nil
}

// BaseURL returns the normalised base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Origin returns scheme://host of the base URL; image paths are served from
// the origin rather than below the api prefix.
func (c *Client) Origin() string {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL
	}
	return parsed.Scheme + "://" + parsed.Host
}

// Movies lists all movies.
func (c *Client) Movies(ctx context.Context) ([]label.Movie, error) {
	var payload []Movie
	if err := c.do(ctx, OpMovies, http.MethodGet, "movies", nil, &payload); err != nil {
		return nil, err
	}
	return MoviesFromWire(payload), nil
}

// Movie fetches a single movie, used to refresh progress after a save.
func (c *Client) Movie(ctx context.Context, movieID int64) (label.Movie, error) {
	var payload Movie
	if err := c.do(ctx, OpMovie, http.MethodGet, fmt.Sprintf("movies/%d", movieID), nil, &payload); err != nil {
		return label.Movie{}, err
	}
	return MovieFromWire(payload), nil
}

// Actors fetches the roster of a movie.
func (c *Client) Actors(ctx context.Context, movieID int64) ([]label.Actor, error) {
	var payload []Actor
	if err := c.do(ctx, OpActors, http.MethodGet, fmt.Sprintf("actors/%d", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return ActorsFromWire(payload), nil
}

// Cluster fetches one cluster with its prior label and predictions.
func (c *Client) Cluster(ctx context.Context, movieID int64, clusterID int) (label.ClusterPayload, error) {
	var payload Cluster
	path := fmt.Sprintf("faces/clusters/%d/%d", movieID, clusterID)
	if err := c.do(ctx, OpCluster, http.MethodGet, path, nil, &payload); err != nil {
		return label.ClusterPayload{}, err
	}
	return ClusterFromWire(payload), nil
}

// SaveCluster submits a cluster snapshot.
func (c *Client) SaveCluster(ctx context.Context, movieID int64, clusterID int, req label.SaveRequest) error {
	body := SaveFromDomain(req)
	var ack Ack
	path := fmt.Sprintf("faces/clusters/%d/%d", movieID, clusterID)
	return c.do(ctx, OpSaveCluster, http.MethodPost, path, body, &ack)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveRequest(op, time.Since(start), err)
		}
	}()

	var reader io.Reader
	if body != nil {
		buf, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("encode %s request: %w", op, merr)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(traceWritten(ctx), method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, c.newID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request (latency=%v): %w", op, time.Since(start), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
