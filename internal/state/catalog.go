package state

import "github.com/atomicstack/face-cluster-labeler/internal/label"

// CatalogStore holds the movie list and the currently selected movie.
type CatalogStore interface {
	Loading() bool
	Movies() []label.Movie
	SetMovies([]label.Movie)
	ReplaceMovies([]label.Movie)
	UpdateMovie(label.Movie) bool
	Select(id int64) (label.Movie, bool)
	Selected() (label.Movie, bool)
	ClusterCount() int
}

type catalogStore struct {
	loading  bool
	movies   []label.Movie
	selected int64
	hasSel   bool
}

// NewCatalogStore returns an empty store in the loading state.
func NewCatalogStore() CatalogStore {
	return &catalogStore{loading: true}
}

func (c *catalogStore) Loading() bool {
	return c.loading
}

func (c *catalogStore) Movies() []label.Movie {
	return cloneMovies(c.movies)
}

// SetMovies stores the first fetched list and leaves the loading state.
func (c *catalogStore) SetMovies(movies []label.Movie) {
	c.loading = false
	c.movies = cloneMovies(movies)
	if c.hasSel && c.indexOf(c.selected) < 0 {
		c.hasSel = false
	}
}

// ReplaceMovies swaps in a re-fetched list while keeping the selection by id.
// An empty refresh keeps the current list.
func (c *catalogStore) ReplaceMovies(movies []label.Movie) {
	if len(movies) == 0 {
		return
	}
	c.SetMovies(movies)
}

// UpdateMovie replaces a single entry by id. It reports whether the entry
// existed; an empty list is never extended.
func (c *catalogStore) UpdateMovie(movie label.Movie) bool {
	if len(c.movies) == 0 {
		return false
	}
	idx := c.indexOf(movie.ID)
	if idx < 0 {
		return false
	}
	c.movies[idx] = movie
	return true
}

func (c *catalogStore) Select(id int64) (label.Movie, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return label.Movie{}, false
	}
	c.selected = id
	c.hasSel = true
	return c.movies[idx], true
}

func (c *catalogStore) Selected() (label.Movie, bool) {
	if !c.hasSel {
		return label.Movie{}, false
	}
	idx := c.indexOf(c.selected)
	if idx < 0 {
		return label.Movie{}, false
	}
	return c.movies[idx], true
}

// ClusterCount returns the cluster count of the selected movie, or 0.
func (c *catalogStore) ClusterCount() int {
	movie, ok := c.Selected()
	if !ok {
		return 0
	}
	return movie.ClusterCount
}

func (c *catalogStore) indexOf(id int64) int {
	for i, m := range c.movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func cloneMovies(movies []label.Movie) []label.Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]label.Movie, len(movies))
	copy(dup, movies)
	return dup
}
