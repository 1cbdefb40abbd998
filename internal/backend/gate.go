package backend

import (
	"context"
	"time"
)

// pollGate keeps catalog fetches at least gap apart, measured from the end of
// the previous fetch. A backend that answers just before the next tick is not
// asked again straight away. Only the poller goroutine touches it.
type pollGate struct {
	gap  time.Duration
	last time.Time
	now  func() time.Time
}

func newPollGate(gap time.Duration) *pollGate {
	return &pollGate{gap: gap, now: time.Now}
}

// wait blocks until the next fetch may start. It returns ctx's error when the
// watcher is stopped first.
func (g *pollGate) wait(ctx context.Context) error {
	if g == nil || g.gap <= 0 || g.last.IsZero() {
		return ctx.Err()
	}
	remaining := g.gap - g.now().Sub(g.last)
	if remaining <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// done records the end of a fetch.
func (g *pollGate) done() {
	if g != nil {
		g.last = g.now()
	}
}
