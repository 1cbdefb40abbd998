package state

import "testing"

func newTestLevel(ids ...string) *Level {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items)
}

// castLevel is The Long Goodbye's roster, keyed by actor id with the role as
// a keyword.
func castLevel() *Level {
	return NewLevel("roster", "Actors", []Item{
		{ID: "12161401", Label: "Elliott Gould", Keywords: []string{"Philip Marlowe"}},
		{ID: "12161402", Label: "Nina van Pallandt", Keywords: []string{"Eileen Wade"}},
		{ID: "12161403", Label: "Sterling Hayden", Keywords: []string{"Roger Wade"}},
		{ID: "12161404", Label: "Mark Rydell", Keywords: []string{"Marty Augustine"}},
		{ID: "12161405", Label: "Henry Gibson", Keywords: []string{"Dr. Verringer"}},
	})
}

func TestNewLevelStartsOnFirstItem(t *testing.T) {
	l := newTestLevel("a", "b")
	item, ok := l.Current()
	if !ok || item.ID != "a" {
		t.Fatalf("expected cursor on first item, got %#v ok=%v", item, ok)
	}
	if _, ok := newTestLevel().Current(); ok {
		t.Fatalf("expected no current item for empty level")
	}
}

func TestUpdateItemsKeepsCursorOnSameID(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Cursor = 1
	l.UpdateItems([]Item{{ID: "c", Label: "c"}, {ID: "b", Label: "b"}, {ID: "a", Label: "a"}})
	item, _ := l.Current()
	if item.ID != "b" {
		t.Fatalf("expected cursor to follow b, got %q", item.ID)
	}

	l.Cursor = 0
	l.UpdateItems([]Item{{ID: "x", Label: "x"}, {ID: "y", Label: "y"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor to stay in range, got %d", l.Cursor)
	}
}

func TestUpdateItemsReappliesFilter(t *testing.T) {
	l := NewLevel("roster", "Actors", []Item{{ID: "1", Label: "Elliott Gould"}, {ID: "2", Label: "Nina van Pallandt"}})
	l.SetFilter("nina", 4)
	l.UpdateItems([]Item{{ID: "1", Label: "Elliott Gould"}, {ID: "2", Label: "Nina van Pallandt"}, {ID: "3", Label: "Sterling Hayden"}})
	if len(l.Items) != 1 || l.Items[0].ID != "2" {
		t.Fatalf("expected filter to survive refresh, got %#v", l.Items)
	}
}

func TestSelectID(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.SelectID("c") || l.Cursor != 2 {
		t.Fatalf("expected cursor on c, got %d", l.Cursor)
	}
	if l.SelectID("missing") {
		t.Fatalf("expected unknown id to be rejected")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor unchanged, got %d", l.Cursor)
	}
}
