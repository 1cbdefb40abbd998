package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/location"
	"github.com/atomicstack/face-cluster-labeler/internal/logging"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/nav"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
	"github.com/atomicstack/face-cluster-labeler/internal/ui/command"
	uistate "github.com/atomicstack/face-cluster-labeler/internal/ui/state"
)

type locationSavedMsg struct {
	path string
	err  error
}

func (m *Model) handleMoviesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(nav.MoviesLoadedMsg)
	if !ok {
		return nil
	}
	if !m.nav.ApplyMovies(loaded) {
		return nil
	}
	m.syncMovies()
	return m.restore()
}

// restore selects the starting position once the catalog is known.
func (m *Model) restore() tea.Cmd {
	if m.restored {
		return nil
	}
	cmd := m.nav.Restore(m.startMovie, m.startCluster)
	if cmd == nil {
		return nil
	}
	m.restored = true
	m.syncMovies()
	req := command.Request{ID: "movie:restore", Label: strconv.FormatInt(m.startMovie, 10), Cmd: cmd}
	return tea.Batch(m.bus.Execute(req), m.startSpinner())
}

func (m *Model) handleMovieRefreshedMsg(msg tea.Msg) tea.Cmd {
	refreshed, ok := msg.(nav.MovieRefreshedMsg)
	if !ok {
		return nil
	}
	if m.nav.ApplyMovie(refreshed) {
		m.syncMovies()
	}
	return nil
}

func (m *Model) handleActorsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(nav.ActorsLoadedMsg)
	if !ok {
		return nil
	}
	if !m.nav.ApplyActors(loaded) {
		return nil
	}
	m.syncRoster()
	return nil
}

func (m *Model) handleClusterLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(nav.ClusterLoadedMsg)
	if !ok {
		return nil
	}
	// A failed load leaves the session loading; the spinner keeps running
	// until the user navigates or reloads.
	if !m.nav.ApplyCluster(loaded) {
		return nil
	}
	m.clearHover()
	m.syncImages(true)
	m.syncRoster()
	return m.updateLocation()
}

func (m *Model) handleClusterSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(nav.ClusterSavedMsg)
	if !ok {
		return nil
	}
	refresh := m.nav.Saved(saved)
	if m.quitting {
		if m.nav.PendingSaves() > 0 {
			return nil
		}
		events.App.Stop("quit")
		return tea.Quit
	}
	return m.bus.Execute(command.Request{
		ID:    "movie:refresh",
		Label: strconv.FormatInt(saved.MovieID, 10),
		Cmd:   refresh,
	})
}

// updateLocation publishes the position of the live cluster as the window
// title and persists it for the next start.
func (m *Model) updateLocation() tea.Cmd {
	movieID, clusterID := m.stores.Session.Position()
	path := location.Format(movieID, clusterID)
	m.locationPath = path
	events.App.Location(path)
	cmds := []tea.Cmd{tea.SetWindowTitle(m.windowTitle())}
	if m.location != nil && m.location.Path() != "" {
		file := m.location
		cmds = append(cmds, func() tea.Msg {
			return locationSavedMsg{path: path, err: file.Save(path)}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleLocationSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(locationSavedMsg)
	if !ok || saved.err == nil {
		return nil
	}
	logging.Error(fmt.Errorf("persist location %s: %w", saved.path, saved.err))
	return nil
}

func (m *Model) windowTitle() string {
	movie, ok := m.stores.Catalog.Selected()
	if !ok {
		return appTitle
	}
	_, clusterID := m.stores.Session.Position()
	rows := state.MovieRows([]label.Movie{movie}, 0)
	return fmt.Sprintf("%s · %s · %s", appTitle, rows[0].Title, state.ClusterHeading(clusterID, movie.ClusterCount))
}

func (m *Model) syncMovies() {
	movies := m.stores.Catalog.Movies()
	items := make([]uistate.Item, 0, len(movies))
	for _, row := range state.MovieRows(movies, 0) {
		items = append(items, uistate.Item{ID: strconv.FormatInt(row.Movie.ID, 10), Label: row.Title})
	}
	m.movies.UpdateItems(items)
	if selected, ok := m.stores.Catalog.Selected(); ok && m.focus != paneMovies {
		m.movies.SelectID(strconv.FormatInt(selected.ID, 10))
	}
	m.syncViewport(paneMovies)
}

// syncImages mirrors the live cluster's images into the image pane. reset
// moves the cursor back to the first image for a newly shown cluster.
func (m *Model) syncImages(reset bool) {
	var items []uistate.Item
	if cluster, ok := m.stores.Session.Cluster(); ok {
		items = make([]uistate.Item, 0, len(cluster.Images))
		for i, img := range cluster.Images {
			items = append(items, uistate.Item{ID: strconv.Itoa(i), Label: img.URL})
		}
	}
	if reset {
		m.images.Cursor = 0
		m.images.ViewportOffset = 0
	}
	m.images.UpdateItems(items)
	m.syncViewport(paneImages)
}

// syncRoster rebuilds the roster in predicted-first order.
func (m *Model) syncRoster() {
	var selected *label.ActorID
	if id, ok := m.stores.Session.SelectedActor(); ok {
		selected = &id
	}
	entries := state.RosterView(m.stores.Session.Actors(), m.stores.Session.Predicted(), selected)
	items := make([]uistate.Item, 0, len(entries))
	m.rosterEntries = make(map[string]state.RosterEntry, len(entries))
	for _, entry := range entries {
		id := strconv.FormatInt(int64(entry.Actor.ID), 10)
		items = append(items, uistate.Item{
			ID:       id,
			Label:    entry.Actor.Name,
			Keywords: []string{entry.Actor.Role},
		})
		m.rosterEntries[id] = entry
	}
	m.roster.UpdateItems(items)
	m.syncViewport(paneRoster)
}
