package dispatcher

import (
	"github.com/atomicstack/face-cluster-labeler/internal/backend"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
)

type Result struct {
	MoviesUpdated bool
	// FirstLoad is set when the event populated a catalog that had never
	// loaded, so the caller still has to pick a starting position.
	FirstLoad bool
}

type Dispatcher struct {
	catalog state.CatalogStore
}

func New(catalog state.CatalogStore) *Dispatcher {
	return &Dispatcher{catalog: catalog}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Catalog.Error(evt.Kind.String(), evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindMovies:
		movies, ok := evt.Data.([]label.Movie)
		if !ok || len(movies) == 0 {
			return res
		}
		if d.catalog.Loading() {
			d.catalog.SetMovies(movies)
			res.FirstLoad = true
		} else {
			d.catalog.ReplaceMovies(movies)
		}
		events.Catalog.Loaded(len(movies))
		res.MoviesUpdated = true
	}
	return res
}
