// Package nav sequences "flush current, load next" transactions against the
// session store and turns backend calls into Bubble Tea commands.
package nav

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/logging"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/metrics"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
)

// Backend is the subset of the REST collaborator the controller needs.
// *api.Client satisfies it.
type Backend interface {
	Movies(ctx context.Context) ([]label.Movie, error)
	Movie(ctx context.Context, movieID int64) (label.Movie, error)
	Actors(ctx context.Context, movieID int64) ([]label.Actor, error)
	Cluster(ctx context.Context, movieID int64, clusterID int) (label.ClusterPayload, error)
	SaveCluster(ctx context.Context, movieID int64, clusterID int, req label.SaveRequest) error
}

// Controller owns cluster navigation and the save-on-navigate policy.
type Controller struct {
	backend Backend
	stores  *state.Context
	metrics *metrics.Metrics
	timeout time.Duration
	pending map[saveTarget]int
}

type saveTarget struct {
	movieID   int64
	clusterID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithMetrics records navigation and save counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithTimeout bounds every backend call issued by the controller.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a controller over the given stores.
func New(backend Backend, stores *state.Context, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		stores:  stores,
		timeout: api.DefaultTimeout,
		pending: make(map[saveTarget]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stores exposes the state context the controller drives.
func (c *Controller) Stores() *state.Context {
	return c.stores
}

// LoadMovies fetches the catalog.
func (c *Controller) LoadMovies() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.context()
		defer cancel()
		movies, err := c.backend.Movies(ctx)
		if err != nil {
			err = fmt.Errorf("load movies: %w", err)
		}
		return MoviesLoadedMsg{Movies: movies, Err: err}
	}
}

// ApplyMovies stores a fetched catalog. A failed fetch leaves the catalog
// loading.
func (c *Controller) ApplyMovies(msg MoviesLoadedMsg) bool {
	if msg.Err != nil {
		logging.Error(msg.Err)
		events.Catalog.Error(api.OpMovies, msg.Err)
		return false
	}
	c.stores.Catalog.SetMovies(msg.Movies)
	events.Catalog.Loaded(len(msg.Movies))
	return true
}

// Restore selects the movie with movieID, or the first movie when it is
// unknown, and loads clusterID folded into its cluster range.
func (c *Controller) Restore(movieID int64, clusterID int) tea.Cmd {
	movies := c.stores.Catalog.Movies()
	if len(movies) == 0 {
		return nil
	}
	target := movies[0]
	for _, movie := range movies {
		if movie.ID == movieID {
			target = movie
			break
		}
	}
	return c.SelectMovie(target.ID, clusterID)
}

// SelectMovie switches to movieID and loads its roster and the given cluster.
// A dirty cluster of the previous movie is flushed first.
func (c *Controller) SelectMovie(movieID int64, clusterID int) tea.Cmd {
	movie, ok := c.stores.Catalog.Select(movieID)
	if !ok {
		return nil
	}
	target := Normalize(movie.ClusterCount, clusterID)
	events.Catalog.Select(movieID, target)
	save, issued := c.flushCmd()
	ticket := c.stores.Session.BeginLoad(movieID, target)
	events.Cluster.LoadStart(movieID, target, uint64(ticket))
	return tea.Batch(save, c.loadCmd(ticket, movieID, target, issued), c.actorsCmd(movieID))
}

// Navigate moves delta clusters from the current one, wrapping at both ends.
// A dirty cluster is snapshotted before the move and saved without blocking
// the load of the next cluster. The load request is held back until the save
// request has been written, never until the save completes.
func (c *Controller) Navigate(delta int) tea.Cmd {
	session := c.stores.Session
	if session.Phase() == state.PhaseIdle {
		return nil
	}
	count := c.stores.Catalog.ClusterCount()
	if count <= 0 {
		return nil
	}
	movieID, clusterID := session.Position()
	dirty := session.Dirty()
	target := WrapCluster(count, clusterID, delta)
	events.Nav.Move(clusterID, target, delta, dirty)
	c.metrics.Navigated(delta)

	save, issued := c.flushCmd()
	ticket := session.BeginLoad(movieID, target)
	events.Cluster.LoadStart(movieID, target, uint64(ticket))
	return tea.Batch(save, c.loadCmd(ticket, movieID, target, issued))
}

// Flush saves the live cluster if it is dirty. It returns nil for a clean
// cluster; no request is made.
func (c *Controller) Flush() tea.Cmd {
	save, _ := c.flushCmd()
	return save
}

// Load starts loading a cluster of the active movie.
func (c *Controller) Load(movieID int64, clusterID int) tea.Cmd {
	ticket := c.stores.Session.BeginLoad(movieID, clusterID)
	events.Cluster.LoadStart(movieID, clusterID, uint64(ticket))
	return c.loadCmd(ticket, movieID, clusterID, nil)
}

// ApplyCluster installs a loaded cluster. Failed and stale loads leave the
// session untouched; a failed load keeps the session loading.
func (c *Controller) ApplyCluster(msg ClusterLoadedMsg) bool {
	if msg.Err != nil {
		logging.Error(msg.Err)
		events.Cluster.LoadFailed(msg.MovieID, msg.ClusterID, msg.Err)
		return false
	}
	if !c.stores.Session.ApplyCluster(msg.Ticket, msg.Payload) {
		events.Cluster.Stale(msg.MovieID, msg.ClusterID, uint64(msg.Ticket))
		return false
	}
	c.metrics.ClusterLoaded()
	events.Cluster.Loaded(msg.MovieID, msg.ClusterID, len(msg.Payload.Images))
	return true
}

// ApplyActors stores a fetched roster.
func (c *Controller) ApplyActors(msg ActorsLoadedMsg) bool {
	if msg.Err != nil {
		logging.Error(msg.Err)
		events.Catalog.Error(api.OpActors, msg.Err)
		return false
	}
	return c.stores.Session.SetActors(msg.MovieID, msg.Actors)
}

// Saved reacts to a finished save. A successful save refreshes the movie so
// its labeled-cluster count stays current. Replies for saves this controller
// never issued do not settle anything.
func (c *Controller) Saved(msg ClusterSavedMsg) tea.Cmd {
	target := saveTarget{movieID: msg.MovieID, clusterID: msg.ClusterID}
	if n := c.pending[target]; n > 1 {
		c.pending[target] = n - 1
	} else {
		delete(c.pending, target)
	}
	if msg.Err != nil {
		return nil
	}
	return c.refreshMovieCmd(msg.MovieID)
}

// PendingSaves counts saves handed out as commands whose reply has not been
// passed to Saved yet.
func (c *Controller) PendingSaves() int {
	total := 0
	for _, n := range c.pending {
		total += n
	}
	return total
}

// ApplyMovie folds a refreshed movie into the catalog.
func (c *Controller) ApplyMovie(msg MovieRefreshedMsg) bool {
	if msg.Err != nil {
		logging.Error(msg.Err)
		events.Catalog.Error(api.OpMovie, msg.Err)
		return false
	}
	if !c.stores.Catalog.UpdateMovie(msg.Movie) {
		return false
	}
	events.Catalog.Refresh(msg.Movie.ID, msg.Movie.LabeledClusterCount)
	return true
}

// flushCmd snapshots a dirty cluster and returns the command saving it plus a
// channel closed once the save request is on the wire, or once the save gives
// up. Both are nil when the cluster is clean.
func (c *Controller) flushCmd() (tea.Cmd, chan struct{}) {
	flush, ok := c.stores.Session.PrepareFlush()
	if !ok {
		if _, ready := c.stores.Session.Cluster(); ready {
			movieID, clusterID := c.stores.Session.Position()
			events.Cluster.FlushSkipped(movieID, clusterID)
			c.metrics.FlushSkipped()
		}
		return nil, nil
	}
	c.pending[saveTarget{movieID: flush.MovieID, clusterID: flush.ClusterID}]++
	issued := make(chan struct{})
	return c.saveCmd(flush, issued), issued
}

func (c *Controller) saveCmd(flush state.Flush, issued chan struct{}) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.context()
		defer cancel()
		var once sync.Once
		release := func() { once.Do(func() { close(issued) }) }
		defer release()
		events.Cluster.Save(flush.MovieID, flush.ClusterID, len(flush.Request.Images), flush.Request.ElapsedMs)
		c.metrics.SaveSubmitted()
		err := c.backend.SaveCluster(api.WithWrittenHook(ctx, release), flush.MovieID, flush.ClusterID, flush.Request)
		if err != nil {
			err = fmt.Errorf("save cluster %d/%d: %w", flush.MovieID, flush.ClusterID, err)
			logging.Error(err)
			events.Cluster.SaveFailed(flush.MovieID, flush.ClusterID, err)
			c.metrics.SaveFailed()
			return ClusterSavedMsg{MovieID: flush.MovieID, ClusterID: flush.ClusterID, Err: err}
		}
		events.Cluster.Saved(flush.MovieID, flush.ClusterID)
		return ClusterSavedMsg{MovieID: flush.MovieID, ClusterID: flush.ClusterID}
	}
}

func (c *Controller) loadCmd(ticket state.Ticket, movieID int64, clusterID int, issued <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if issued != nil {
			<-issued
		}
		ctx, cancel := c.context()
		defer cancel()
		payload, err := c.backend.Cluster(ctx, movieID, clusterID)
		if err != nil {
			err = fmt.Errorf("load cluster %d/%d: %w", movieID, clusterID, err)
		}
		return ClusterLoadedMsg{Ticket: ticket, MovieID: movieID, ClusterID: clusterID, Payload: payload, Err: err}
	}
}

func (c *Controller) actorsCmd(movieID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.context()
		defer cancel()
		actors, err := c.backend.Actors(ctx, movieID)
		if err != nil {
			err = fmt.Errorf("load actors %d: %w", movieID, err)
		}
		return ActorsLoadedMsg{MovieID: movieID, Actors: actors, Err: err}
	}
}

func (c *Controller) refreshMovieCmd(movieID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.context()
		defer cancel()
		movie, err := c.backend.Movie(ctx, movieID)
		if err != nil {
			err = fmt.Errorf("refresh movie %d: %w", movieID, err)
		}
		return MovieRefreshedMsg{Movie: movie, Err: err}
	}
}

func (c *Controller) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}
