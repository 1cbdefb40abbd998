package ui

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
)

type regionKind int

const (
	regionRow regionKind = iota
	regionButton
)

// hitRegion is a rectangle of one screen row that reacts to the pointer.
type hitRegion struct {
	id     string
	kind   regionKind
	pane   pane
	index  int
	button int
	y      int
	x0, x1 int
	hover  *state.HoverItem
}

func (r hitRegion) contains(x, y int) bool {
	return y == r.y && x >= r.x0 && x < r.x1
}

func (f frame) hitTest(x, y int) (hitRegion, bool) {
	for _, r := range f.regions {
		if r.contains(x, y) {
			return r, true
		}
	}
	return hitRegion{}, false
}

// paneAt returns the column under x, used for wheel scrolling.
func (f frame) paneAt(x int) (pane, bool) {
	for _, col := range f.columns {
		if x >= col.x && x < col.x+col.width {
			return col.pane, true
		}
	}
	return paneCount, false
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.quitting {
		return nil
	}
	f := m.layout()
	region, hit := f.hitTest(ev.X, ev.Y)
	m.updateHover(region, hit, ev.X, ev.Y)

	switch {
	case ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown:
		p, ok := f.paneAt(ev.X)
		if !ok {
			return nil
		}
		delta := 1
		if ev.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if l := m.levelFor(p); l != nil && l.MoveCursorBy(delta) {
			events.UI.Cursor(l.ID, l.Cursor)
			m.syncViewport(p)
		}
		return nil
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if !hit {
			return nil
		}
		return m.clickRegion(region)
	}
	return nil
}

// updateHover turns pointer motion into enter and leave notifications for
// the overlay store. Moving between rows leaves the old one first.
func (m *Model) updateHover(region hitRegion, hit bool, x, y int) {
	id := ""
	if hit && region.hover != nil {
		id = region.id
	}
	if id == m.hoverID {
		return
	}
	m.clearHover()
	if id == "" {
		return
	}
	item := *region.hover
	item.Anchor = state.Anchor{X: x, Y: y}
	item.RequiredKey = m.popupKey
	m.stores.Overlay.SetHoverItem(&item)
	m.hoverID = id
	m.hoverEntered = true
	events.Overlay.Enter(item.Title, m.stores.Overlay.Count())
}

// clearHover leaves the hovered target, if any.
func (m *Model) clearHover() {
	if m.hoverEntered {
		m.stores.Overlay.SetHoverItem(nil)
		events.Overlay.Leave(m.stores.Overlay.Count())
	}
	m.hoverID = ""
	m.hoverEntered = false
}

func (m *Model) clickRegion(region hitRegion) tea.Cmd {
	events.UI.Click(region.id)
	if region.kind == regionButton {
		m.pressStatus(region.button)
		return nil
	}
	l := m.levelFor(region.pane)
	if l == nil || region.index < 0 || region.index >= len(l.Items) {
		return nil
	}
	if m.focus != region.pane {
		m.focus = region.pane
		events.UI.Focus(m.focus.String())
	}
	l.Cursor = region.index
	m.syncViewport(region.pane)
	return m.activate(region.pane)
}

func (m *Model) imageHover(img label.Image) *state.HoverItem {
	var images []string
	for _, raw := range []string{img.FullFrameURL, img.URL} {
		if raw != "" {
			images = append(images, m.resolveAsset(raw))
		}
	}
	return &state.HoverItem{Title: fmt.Sprintf("Frame %d", img.FrameIndex), Images: images}
}

func (m *Model) actorHover(actor label.Actor) *state.HoverItem {
	images := make([]string, 0, len(actor.Images))
	for _, raw := range actor.Images {
		images = append(images, m.resolveAsset(raw))
	}
	title := actor.Name
	if actor.Role != "" {
		title = fmt.Sprintf("%s as %s", actor.Name, actor.Role)
	}
	return &state.HoverItem{Title: title, Images: images}
}

// resolveAsset makes a backend-relative image path absolute against the
// asset origin. Absolute URLs pass through.
func (m *Model) resolveAsset(raw string) string {
	if m.assetBase == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() {
		return raw
	}
	base, err := url.Parse(m.assetBase)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

// previewPlacement computes where the preview panel goes inside a body of
// bodyHeight rows. start is the first body row the panel covers.
func (m *Model) previewPlacement(panelHeight, bodyHeight int) (start int, side state.Side, ok bool) {
	item, ok := m.stores.Overlay.Current()
	if !ok || !m.stores.Overlay.Visible() {
		return 0, state.Below, false
	}
	viewport := m.height
	if viewport <= 0 {
		viewport = headerRows + bodyHeight
	}
	side = state.Placement(item.Anchor.Y, viewport)
	anchorRow := item.Anchor.Y - headerRows
	if side == state.Below {
		start = anchorRow + 1
	} else {
		start = anchorRow - panelHeight
	}
	if start+panelHeight > bodyHeight {
		start = bodyHeight - panelHeight
	}
	if start < 0 {
		start = 0
	}
	return start, side, true
}

// overlayPreview draws the preview panel over the cluster column rows.
func (m *Model) overlayPreview(rows []string, width, bodyHeight int) {
	item, ok := m.stores.Overlay.Current()
	if !ok || !m.stores.Overlay.Visible() {
		return
	}
	panel := m.renderPreviewPanel(item, width)
	if len(panel) > len(rows) {
		panel = panel[:len(rows)]
	}
	start, _, ok := m.previewPlacement(len(panel), bodyHeight)
	if !ok {
		return
	}
	for i, line := range panel {
		if start+i < len(rows) {
			rows[start+i] = fitWidth(line, width)
		}
	}
}

func (m *Model) renderPreviewPanel(item state.HoverItem, totalWidth int) []string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := totalWidth - 2
	if innerW < 1 {
		innerW = 1
	}
	border := func(s string) string { return renderStyled(styles.PreviewBorder, s) }

	titleLabel := "Preview"
	if t := strings.TrimSpace(item.Title); t != "" {
		titleLabel = "Preview: " + t
	}
	contentLines := item.PreviewURLs()
	scrollInfo := ""
	if len(item.Images) > len(contentLines) {
		scrollInfo = fmt.Sprintf(" %d/%d ", len(contentLines), len(item.Images))
	}
	bodyStyle := styles.PreviewBody
	if len(contentLines) == 0 {
		contentLines = []string{"No preview images to show."}
		bodyStyle = styles.Info
	}

	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(scrollSeg))
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	rows := make([]string, 0, len(contentLines)+2)
	rows = append(rows, border(tlc+hz)+
		renderStyled(styles.PreviewTitle, titleSeg)+
		border(strings.Repeat(hz, dashes))+
		renderStyled(styles.PaneTitle, scrollSeg)+
		border(hz+trc))
	for _, content := range contentLines {
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, border(vt)+renderStyled(bodyStyle, content)+border(vt))
	}
	rows = append(rows, border(blc+strings.Repeat(hz, innerW)+brc))
	return rows
}
