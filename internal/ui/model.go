package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/face-cluster-labeler/internal/backend"
	"github.com/atomicstack/face-cluster-labeler/internal/data/dispatcher"
	"github.com/atomicstack/face-cluster-labeler/internal/location"
	"github.com/atomicstack/face-cluster-labeler/internal/nav"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
	"github.com/atomicstack/face-cluster-labeler/internal/theme"
	"github.com/atomicstack/face-cluster-labeler/internal/ui/command"
	uistate "github.com/atomicstack/face-cluster-labeler/internal/ui/state"
)

type level = uistate.Level

var styles = theme.Default()

const appTitle = "Face Cluster Labeler"

type msgHandler func(tea.Msg) tea.Cmd

// pane identifies one of the three focusable lists.
type pane int

const (
	paneImages pane = iota
	paneRoster
	paneMovies
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneImages:
		return "images"
	case paneRoster:
		return "roster"
	case paneMovies:
		return "movies"
	default:
		return "unknown"
	}
}

// Options configures a Model.
type Options struct {
	Controller *nav.Controller
	Watcher    *backend.Watcher
	Width      int
	Height     int
	ShowFooter bool
	// PopupKey is the key that must be held (toggled, in a terminal) for the
	// hover preview to show.
	PopupKey string
	// AssetBase is the origin relative image paths are resolved against.
	AssetBase string
	Location  *location.File
	// StartMovie and StartCluster give the restored position. An unknown movie
	// falls back to the first one.
	StartMovie   int64
	StartCluster int
	// Animate enables the spinner and cursor blink timers.
	Animate bool
	Now     func() time.Time
}

// Model implements the Bubble Tea model for the labeler.
type Model struct {
	stores     *state.Context
	nav        *nav.Controller
	bus        *command.Bus
	dispatcher *dispatcher.Dispatcher
	keys       keyMap

	focus  pane
	images *level
	roster *level
	movies *level

	rosterEntries map[string]state.RosterEntry

	popupKey     string
	previewHeld  bool
	hoverID      string
	hoverEntered bool
	assetBase    string

	location     *location.File
	locationPath string
	startMovie   int64
	startCluster int
	restored     bool

	spinner           spinner.Model
	spinning          bool
	animate           bool
	filterCursor      cursor.Model
	filterCursorDirty bool

	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	quitting    bool

	backend *backend.Watcher

	now      func() time.Time
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around a navigation controller.
func NewModel(opts Options) *Model {
	stores := opts.Controller.Stores()
	popupKey := strings.ToLower(strings.TrimSpace(opts.PopupKey))
	if popupKey == "" {
		popupKey = "ctrl+p"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		stores:        stores,
		nav:           opts.Controller,
		bus:           command.New(),
		dispatcher:    dispatcher.New(stores.Catalog),
		keys:          newKeyMap(popupKey),
		images:        uistate.NewLevel(paneImages.String(), "Images", nil),
		roster:        uistate.NewLevel(paneRoster.String(), "Actors", nil),
		movies:        uistate.NewLevel(paneMovies.String(), "Movies", nil),
		rosterEntries: map[string]state.RosterEntry{},
		popupKey:      popupKey,
		assetBase:     opts.AssetBase,
		location:      opts.Location,
		startMovie:    opts.StartMovie,
		startCluster:  opts.StartCluster,
		animate:       opts.Animate,
		showFooter:    opts.ShowFooter,
		backend:       opts.Watcher,
		now:           now,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spinner = s
	c := cursor.New()
	if !m.animate {
		c.SetMode(cursor.CursorStatic)
	}
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.bus.Execute(command.Request{ID: "movies:load", Label: "movies", Cmd: m.nav.LoadMovies()}),
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):          m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):       m.handleSpinnerTickMsg,
		reflect.TypeOf(nav.MoviesLoadedMsg{}):   m.handleMoviesLoadedMsg,
		reflect.TypeOf(nav.MovieRefreshedMsg{}): m.handleMovieRefreshedMsg,
		reflect.TypeOf(nav.ActorsLoadedMsg{}):   m.handleActorsLoadedMsg,
		reflect.TypeOf(nav.ClusterLoadedMsg{}):  m.handleClusterLoadedMsg,
		reflect.TypeOf(nav.ClusterSavedMsg{}):   m.handleClusterSavedMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
		reflect.TypeOf(locationSavedMsg{}):      m.handleLocationSavedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) levelFor(p pane) *level {
	switch p {
	case paneImages:
		return m.images
	case paneRoster:
		return m.roster
	case paneMovies:
		return m.movies
	default:
		return nil
	}
}

// startSpinner kicks off spinner ticks while something is loading.
func (m *Model) startSpinner() tea.Cmd {
	if !m.animate || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// busy reports whether the catalog or the live cluster is still loading.
func (m *Model) busy() bool {
	return m.stores.Catalog.Loading() || m.stores.Session.Loading()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
