package state

import (
	"testing"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

func TestCatalogSelectAndCount(t *testing.T) {
	c := NewCatalogStore()
	if !c.Loading() {
		t.Fatalf("new store should be loading")
	}
	c.SetMovies([]label.Movie{{ID: 1, ClusterCount: 10}, {ID: 2, ClusterCount: 4}})
	if c.Loading() {
		t.Fatalf("store should stop loading after SetMovies")
	}
	if c.ClusterCount() != 0 {
		t.Fatalf("no selection should report 0 clusters")
	}
	if _, ok := c.Select(99); ok {
		t.Fatalf("unknown id should not select")
	}
	if _, ok := c.Select(2); !ok || c.ClusterCount() != 4 {
		t.Fatalf("expected movie 2 with 4 clusters")
	}
}

func TestCatalogUpdateMovie(t *testing.T) {
	c := NewCatalogStore()
	if c.UpdateMovie(label.Movie{ID: 1}) {
		t.Fatalf("update on an empty list should be a no-op")
	}
	if len(c.Movies()) != 0 {
		t.Fatalf("empty list must stay empty")
	}
	c.SetMovies([]label.Movie{{ID: 1, LabeledClusterCount: 1}, {ID: 2}})
	if !c.UpdateMovie(label.Movie{ID: 1, LabeledClusterCount: 5}) {
		t.Fatalf("expected update to apply")
	}
	if c.Movies()[0].LabeledClusterCount != 5 {
		t.Fatalf("expected refreshed count")
	}
	if c.UpdateMovie(label.Movie{ID: 3}) {
		t.Fatalf("unknown movie should not be appended")
	}
}

func TestCatalogReplaceKeepsSelection(t *testing.T) {
	c := NewCatalogStore()
	c.SetMovies([]label.Movie{{ID: 1}, {ID: 2, ClusterCount: 3}})
	c.Select(2)
	c.ReplaceMovies([]label.Movie{{ID: 2, ClusterCount: 3, LabeledClusterCount: 2}, {ID: 1}})
	movie, ok := c.Selected()
	if !ok || movie.ID != 2 || movie.LabeledClusterCount != 2 {
		t.Fatalf("selection lost on refresh: %+v", movie)
	}
	c.ReplaceMovies(nil)
	if len(c.Movies()) != 2 {
		t.Fatalf("empty refresh should keep the list")
	}
	c.ReplaceMovies([]label.Movie{{ID: 1}})
	if _, ok := c.Selected(); ok {
		t.Fatalf("selection should drop when the movie disappears")
	}
}
