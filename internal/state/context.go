package state

// Context bundles the three stores for one labeling session. It is created
// once by the app and passed to the UI model and navigation controller.
type Context struct {
	Catalog CatalogStore
	Session *SessionStore
	Overlay *OverlayStore
}

// NewContext builds a fresh set of stores.
func NewContext(opts SessionOptions) *Context {
	return &Context{
		Catalog: NewCatalogStore(),
		Session: NewSessionStore(opts),
		Overlay: NewOverlayStore(),
	}
}

// Close tears down transient state tied to the running program.
func (c *Context) Close() {
	if c == nil || c.Overlay == nil {
		return
	}
	c.Overlay.Reset()
}
