package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
	"github.com/atomicstack/face-cluster-labeler/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.quitting {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Preview):
		m.togglePreviewKey()
		return nil
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Prev):
		return m.navigate(-1)
	case key.Matches(keyMsg, m.keys.Next):
		return m.navigate(1)
	case key.Matches(keyMsg, m.keys.Focus):
		m.cycleFocus(1)
		return nil
	case key.Matches(keyMsg, m.keys.FocusBack):
		m.cycleFocus(-1)
		return nil
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Reload):
		return m.reload()
	}
	if idx := m.keys.statusIndex(keyMsg.String()); idx >= 0 {
		m.pressStatus(idx)
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Activate):
		return m.activate(m.focus)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(func(l *level) bool { return l.MoveCursorBy(-1) })
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(func(l *level) bool { return l.MoveCursorBy(1) })
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleItems(m.focus)) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleItems(m.focus)) })
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(func(l *level) bool { return l.MoveCursorHome() })
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(func(l *level) bool { return l.MoveCursorEnd() })
	default:
		events.Nav.Ignored(keyMsg.String())
	}
	return nil
}

// togglePreviewKey emulates holding the preview key. Terminals report no key
// releases, so each press flips the held state.
func (m *Model) togglePreviewKey() {
	m.previewHeld = !m.previewHeld
	if m.previewHeld {
		m.stores.Overlay.KeyDown(m.popupKey)
	} else {
		m.stores.Overlay.KeyUp(m.popupKey)
	}
	events.Overlay.Key(m.popupKey, m.previewHeld)
}

func (m *Model) releasePreviewKey() bool {
	if !m.previewHeld {
		return false
	}
	m.togglePreviewKey()
	return true
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.releasePreviewKey() {
		return nil
	}
	if m.focus == paneRoster && m.clearFilter() {
		return nil
	}
	return m.quit()
}

// quit flushes a dirty cluster before exiting. The program stops once every
// outstanding save, including those started by earlier navigation, has been
// answered.
func (m *Model) quit() tea.Cmd {
	if m.quitting {
		return nil
	}
	m.quitting = true
	flush := m.nav.Flush()
	if flush == nil && m.nav.PendingSaves() == 0 {
		events.App.Stop("quit")
		return tea.Quit
	}
	m.setInfo("Saving cluster before exit…")
	return m.bus.Execute(command.Request{ID: "cluster:flush", Label: "quit", Cmd: flush})
}

func (m *Model) navigate(delta int) tea.Cmd {
	cmd := m.nav.Navigate(delta)
	if cmd == nil {
		return nil
	}
	m.beginClusterLoad()
	id := "cluster:next"
	if delta < 0 {
		id = "cluster:prev"
	}
	movieID, clusterID := m.stores.Session.Position()
	req := command.Request{ID: id, Label: fmt.Sprintf("%d/%d", movieID, clusterID), Cmd: cmd}
	return tea.Batch(m.bus.Execute(req), m.startSpinner())
}

// reload refetches the current cluster, saving it first when dirty.
func (m *Model) reload() tea.Cmd {
	cmd := m.nav.Navigate(0)
	if cmd == nil {
		return nil
	}
	m.beginClusterLoad()
	movieID, clusterID := m.stores.Session.Position()
	req := command.Request{ID: "cluster:reload", Label: fmt.Sprintf("%d/%d", movieID, clusterID), Cmd: cmd}
	return tea.Batch(m.bus.Execute(req), m.startSpinner())
}

// beginClusterLoad resets everything that belongs to the outgoing cluster.
func (m *Model) beginClusterLoad() {
	m.clearHover()
	m.syncImages(true)
	m.syncRoster()
}

func (m *Model) selectMovie(movieID int64, clusterID int) tea.Cmd {
	cmd := m.nav.SelectMovie(movieID, clusterID)
	if cmd == nil {
		return nil
	}
	m.clearFilter()
	m.beginClusterLoad()
	m.syncMovies()
	req := command.Request{ID: "movie:select", Label: strconv.FormatInt(movieID, 10), Cmd: cmd}
	return tea.Batch(m.bus.Execute(req), m.startSpinner())
}

func (m *Model) cycleFocus(step int) {
	m.focus = pane((int(m.focus) + step + int(paneCount)) % int(paneCount))
	events.UI.Focus(m.focus.String())
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.levelFor(m.focus)
	if current == nil {
		return
	}
	if move(current) {
		events.UI.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(m.focus)
}

func (m *Model) syncViewport(p pane) {
	if l := m.levelFor(p); l != nil {
		l.EnsureCursorVisible(m.maxVisibleItems(p))
	}
}

// activate performs the primary action of the row under the cursor.
func (m *Model) activate(p pane) tea.Cmd {
	current := m.levelFor(p)
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	switch p {
	case paneImages:
		idx, err := strconv.Atoi(item.ID)
		if err != nil {
			return nil
		}
		if status, ok := m.stores.Session.ToggleImageStatus(idx); ok {
			events.Cluster.ToggleImage(idx, string(status))
			m.syncImages(false)
		}
	case paneRoster:
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			return nil
		}
		if m.stores.Session.SetSelectedActor(label.Ptr(label.ActorID(id)), true) {
			selected, has := m.stores.Session.SelectedActor()
			var actor interface{}
			if has {
				actor = int64(selected)
			}
			events.Cluster.SelectActor(actor, m.stores.Session.Dirty())
			m.syncRoster()
		}
	case paneMovies:
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			return nil
		}
		if current, ok := m.stores.Catalog.Selected(); ok && current.ID == id {
			return nil
		}
		return m.selectMovie(id, 0)
	}
	return nil
}

// pressStatus presses the status button at idx. Pressing the active button
// resets the cluster to the default status.
func (m *Model) pressStatus(idx int) {
	cluster, ok := m.stores.Session.Cluster()
	if !ok {
		return
	}
	buttons := state.StatusButtons(cluster.Status)
	if idx < 0 || idx >= len(buttons) {
		return
	}
	if status, ok := m.stores.Session.SetClusterStatus(string(buttons[idx].OnPress)); ok {
		events.Cluster.Status(string(status))
	}
}
