package state

import "strings"

// MaxPreviewImages caps how many preview URLs a hover item shows.
const MaxPreviewImages = 3

// Anchor is the pointer position a hover item was entered at, in cells.
type Anchor struct {
	X int
	Y int
}

// HoverItem is the content of the floating preview panel.
type HoverItem struct {
	Title       string
	Anchor      Anchor
	Images      []string
	RequiredKey string
}

// PreviewURLs returns at most MaxPreviewImages image URLs.
func (h HoverItem) PreviewURLs() []string {
	if len(h.Images) > MaxPreviewImages {
		return append([]string(nil), h.Images[:MaxPreviewImages]...)
	}
	return append([]string(nil), h.Images...)
}

// OverlayStore tracks the hover preview: a saturating reference count of
// entered targets, the latest item, and which keys are held down.
type OverlayStore struct {
	count   int
	current *HoverItem
	pressed map[string]bool
}

// NewOverlayStore returns an empty overlay store.
func NewOverlayStore() *OverlayStore {
	return &OverlayStore{pressed: make(map[string]bool)}
}

// SetHoverItem records a pointer enter (item != nil) or leave (item == nil).
// The latest entered item always wins. The item is cleared only when the
// count drops back to zero.
func (o *OverlayStore) SetHoverItem(item *HoverItem) {
	if item != nil {
		dup := *item
		dup.Images = append([]string(nil), item.Images...)
		o.count++
		o.current = &dup
		return
	}
	if o.count > 0 {
		o.count--
	}
	if o.count == 0 {
		o.current = nil
	}
}

// KeyDown marks key as held.
func (o *OverlayStore) KeyDown(key string) {
	o.pressed[normalizeKey(key)] = true
}

// KeyUp marks key as released. The hover item is left untouched.
func (o *OverlayStore) KeyUp(key string) {
	delete(o.pressed, normalizeKey(key))
}

// Pressed reports whether key is currently held.
func (o *OverlayStore) Pressed(key string) bool {
	return o.pressed[normalizeKey(key)]
}

// Count returns the hover reference count.
func (o *OverlayStore) Count() int {
	return o.count
}

// Current returns a copy of the latest hover item.
func (o *OverlayStore) Current() (HoverItem, bool) {
	if o.current == nil {
		return HoverItem{}, false
	}
	dup := *o.current
	dup.Images = append([]string(nil), o.current.Images...)
	return dup, true
}

// Visible reports whether the preview should render: an item is hovered and
// its gate key is held.
func (o *OverlayStore) Visible() bool {
	if o.current == nil {
		return false
	}
	return o.Pressed(o.current.RequiredKey)
}

// Reset drops all hover and key state.
func (o *OverlayStore) Reset() {
	o.count = 0
	o.current = nil
	o.pressed = make(map[string]bool)
}

// Side says where the preview sits relative to its anchor.
type Side int

const (
	Below Side = iota
	Above
)

func (s Side) String() string {
	if s == Above {
		return "above"
	}
	return "below"
}

// Placement puts the preview below anchors in the upper half of the viewport
// and above anchors in the lower half.
func Placement(anchorY, viewportHeight int) Side {
	if anchorY < viewportHeight/2 {
		return Below
	}
	return Above
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
