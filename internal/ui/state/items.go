package state

// Item is a single selectable row in a list pane. Keywords are extra search
// terms that are not displayed, such as an actor's role.
type Item struct {
	ID       string
	Label    string
	Keywords []string
}

// CloneItems copies the slice. Keywords are shared; items never mutate them.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
