package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindMovies Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindMovies:
		return "movies"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// MovieSource lists movies. *api.Client satisfies it.
type MovieSource interface {
	Movies(ctx context.Context) ([]label.Movie, error)
}

// minPollGap is the least idle time between two catalog fetches, however
// short the interval.
const minPollGap = time.Second

// Watcher re-fetches the movie catalog at a fixed interval so labeled-cluster
// progress made by other annotators shows up, and publishes events.
type Watcher struct {
	source   MovieSource
	interval time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls source every interval. The first
// poll happens one interval after start; the initial catalog is loaded by the
// UI. A non-positive interval disables polling and returns nil.
func NewWatcher(source MovieSource, interval, timeout time.Duration) *Watcher {
	if source == nil || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startMoviePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	if w == nil {
		return
	}
	w.wg.Wait()
}

func (w *Watcher) startMoviePoller() {
	gate := newPollGate(minPollGap)
	w.wg.Add(1)
	go w.poll(KindMovies, func(ctx context.Context) (interface{}, error) {
		if err := gate.wait(ctx); err != nil {
			return nil, err
		}
		defer gate.done()
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}
		return w.source.Movies(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
