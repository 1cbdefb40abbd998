package nav

import (
	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
)

// MoviesLoadedMsg carries the movie catalog.
type MoviesLoadedMsg struct {
	Movies []label.Movie
	Err    error
}

// MovieRefreshedMsg carries one re-fetched movie after a save.
type MovieRefreshedMsg struct {
	Movie label.Movie
	Err   error
}

// ActorsLoadedMsg carries the roster of a movie.
type ActorsLoadedMsg struct {
	MovieID int64
	Actors  []label.Actor
	Err     error
}

// ClusterLoadedMsg is the response to one cluster load.
type ClusterLoadedMsg struct {
	Ticket    state.Ticket
	MovieID   int64
	ClusterID int
	Payload   label.ClusterPayload
	Err       error
}

// ClusterSavedMsg reports the outcome of a save. Failures have already been
// logged; the session carries on regardless.
type ClusterSavedMsg struct {
	MovieID   int64
	ClusterID int
	Err       error
}
