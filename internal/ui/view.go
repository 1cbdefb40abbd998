package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/face-cluster-labeler/internal/format/table"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
)

const (
	defaultWidth      = 100
	columnSeparator   = " │ "
	headerRows        = 1
	clusterHeaderRows = 4 // heading, status buttons, label time, blank
	rosterHeaderRows  = 2 // title, filter prompt
	moviesHeaderRows  = 1
	movieRowLines     = 2
	predictedMark     = "◆ "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// column is one vertical strip of the body.
type column struct {
	pane  pane
	x     int
	width int
	lines []styledLine
}

// frame is a computed layout: the body columns plus the mouse regions of
// everything that reacts to the pointer.
type frame struct {
	columns    [3]column
	regions    []hitRegion
	bodyHeight int
}

// View implements tea.Model.
func (m *Model) View() string {
	f := m.layout()
	out := make([]string, 0, headerRows+f.bodyHeight+2)

	total := m.totalWidth()
	header := applyWidth([]styledLine{{text: m.headerText(), style: styles.Header}}, total)
	out = append(out, renderLines(header))

	var rendered [3][]string
	for i, col := range f.columns {
		rendered[i] = renderColumn(col.lines, col.width, f.bodyHeight)
	}
	m.overlayPreview(rendered[1], f.columns[1].width, f.bodyHeight)

	sep := columnSeparator
	if styles.Separator != nil {
		sep = styles.Separator.Render(columnSeparator)
	}
	for row := 0; row < f.bodyHeight; row++ {
		out = append(out, rendered[0][row]+sep+rendered[1][row]+sep+rendered[2][row])
	}

	bottom := []styledLine{m.statusLine()}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: m.keys.footer(), style: styles.Footer})
	}
	out = append(out, renderLines(applyWidth(bottom, total)))
	return strings.Join(out, "\n")
}

func (m *Model) totalWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// columnWidths splits the terminal into movies, cluster and roster columns.
func (m *Model) columnWidths() (int, int, int) {
	total := m.totalWidth()
	movies := clamp(total/4, 18, 36)
	roster := clamp(total/4, 20, 36)
	cluster := total - movies - roster - 2*lipgloss.Width(columnSeparator)
	if cluster < 20 {
		cluster = 20
	}
	return movies, cluster, roster
}

func (m *Model) bottomRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

// bodyHeight is the number of rows between header and status line, or -1
// when the terminal height is unknown.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return -1
	}
	h := m.height - headerRows - m.bottomRows()
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) maxVisibleItems(p pane) int {
	body := m.bodyHeight()
	if body < 0 {
		return -1
	}
	var n int
	switch p {
	case paneImages:
		n = body - clusterHeaderRows
	case paneRoster:
		n = body - rosterHeaderRows
	case paneMovies:
		n = (body - moviesHeaderRows) / movieRowLines
	}
	if n < 1 {
		return 1
	}
	return n
}

// layout builds the body columns and their hit regions.
func (m *Model) layout() frame {
	moviesW, clusterW, rosterW := m.columnWidths()
	sepW := lipgloss.Width(columnSeparator)
	f := frame{}
	f.columns[0] = column{pane: paneMovies, x: 0, width: moviesW}
	f.columns[1] = column{pane: paneImages, x: moviesW + sepW, width: clusterW}
	f.columns[2] = column{pane: paneRoster, x: moviesW + sepW + clusterW + sepW, width: rosterW}

	m.layoutMovies(&f, &f.columns[0])
	m.layoutCluster(&f, &f.columns[1])
	m.layoutRoster(&f, &f.columns[2])

	f.bodyHeight = m.bodyHeight()
	if f.bodyHeight < 0 {
		f.bodyHeight = 1
		for _, col := range f.columns {
			if len(col.lines) > f.bodyHeight {
				f.bodyHeight = len(col.lines)
			}
		}
	}
	kept := f.regions[:0]
	for _, r := range f.regions {
		if r.y < headerRows+f.bodyHeight {
			kept = append(kept, r)
		}
	}
	f.regions = kept
	return f
}

func (f *frame) addRow(col *column, p pane, index int, id string, hover *state.HoverItem) {
	f.regions = append(f.regions, hitRegion{
		id:     id,
		kind:   regionRow,
		pane:   p,
		index:  index,
		y:      headerRows + len(col.lines),
		x0:     col.x,
		x1:     col.x + col.width,
		hover:  hover,
		button: -1,
	})
}

// visibleRange returns the slice of items the viewport shows.
func visibleRange(l *level, maxVisible int) (int, int) {
	l.EnsureCursorVisible(maxVisible)
	start, end := 0, len(l.Items)
	if maxVisible > 0 && end > maxVisible {
		start = l.ViewportOffset
		end = start + maxVisible
		if end > len(l.Items) {
			end = len(l.Items)
		}
	}
	return start, end
}

func (m *Model) paneTitle(title string, p pane) styledLine {
	style := styles.PaneTitle
	if m.focus == p {
		style = styles.FocusedPaneTitle
	}
	return styledLine{text: title, style: style}
}

func (m *Model) layoutMovies(f *frame, col *column) {
	col.lines = append(col.lines, m.paneTitle("Movies", paneMovies))
	if m.stores.Catalog.Loading() {
		col.lines = append(col.lines, styledLine{text: m.spinner.View() + " Loading movies…", raw: true})
		return
	}
	if len(m.movies.Items) == 0 {
		col.lines = append(col.lines, styledLine{text: "(no movies)", style: styles.Info})
		return
	}
	var active int64
	if movie, ok := m.stores.Catalog.Selected(); ok {
		active = movie.ID
	}
	rows := state.MovieRows(m.stores.Catalog.Movies(), active)
	byID := make(map[string]state.MovieRow, len(rows))
	for _, row := range rows {
		byID[strconv.FormatInt(row.Movie.ID, 10)] = row
	}
	start, end := visibleRange(m.movies, m.maxVisibleItems(paneMovies))
	for idx := start; idx < end; idx++ {
		item := m.movies.Items[idx]
		row := byID[item.ID]
		mark := "  "
		if row.Selected {
			mark = "● "
		}
		id := "movies:" + item.ID
		f.addRow(col, paneMovies, idx, id, nil)
		col.lines = append(col.lines, itemLine(mark+row.Title, m.isCursor(paneMovies, idx), styles.Item, col.width))
		f.addRow(col, paneMovies, idx, id, nil)
		col.lines = append(col.lines, styledLine{text: "  " + row.Progress, style: styles.Progress})
	}
}

func (m *Model) layoutCluster(f *frame, col *column) {
	session := m.stores.Session
	movie, hasMovie := m.stores.Catalog.Selected()
	cluster, ready := session.Cluster()
	if !ready {
		switch {
		case m.stores.Catalog.Loading():
			col.lines = append(col.lines, styledLine{text: "Waiting for the movie list…", style: styles.Info})
		case session.Phase() == state.PhaseIdle || !hasMovie:
			col.lines = append(col.lines, styledLine{text: "Select a movie to start labeling.", style: styles.Info})
		default:
			_, clusterID := session.Position()
			text := fmt.Sprintf("%s Loading %s…", m.spinner.View(), state.ClusterHeading(clusterID, movie.ClusterCount))
			col.lines = append(col.lines, styledLine{text: text, raw: true})
		}
		return
	}

	heading := renderStyled(styles.FocusedPaneTitle, state.ClusterHeading(cluster.ID, movie.ClusterCount))
	if session.Dirty() {
		heading += " " + renderStyled(styles.Dirty, "● modified")
	}
	col.lines = append(col.lines, styledLine{text: heading, raw: true})

	var parts []string
	offset := 0
	for i, b := range state.StatusButtons(cluster.Status) {
		text := fmt.Sprintf("[%s %s]", strings.ToUpper(b.Key), b.Title)
		style := styles.StatusButton
		if b.Selected {
			style = styles.StatusButtonActive
		}
		w := lipgloss.Width(text)
		f.regions = append(f.regions, hitRegion{
			id:     "button:" + strconv.Itoa(i),
			kind:   regionButton,
			pane:   paneImages,
			index:  -1,
			button: i,
			y:      headerRows + len(col.lines),
			x0:     col.x + offset,
			x1:     col.x + offset + w,
		})
		parts = append(parts, renderStyled(style, text))
		offset += w + 1
	}
	col.lines = append(col.lines, styledLine{text: strings.Join(parts, " "), raw: true})
	col.lines = append(col.lines, styledLine{text: state.LabelTimeMessage(cluster.LabelTime, m.now()), style: styles.Info})
	col.lines = append(col.lines, styledLine{})

	if len(cluster.Images) == 0 {
		col.lines = append(col.lines, styledLine{text: "(no images)", style: styles.Info})
		return
	}
	cells := make([][]string, len(cluster.Images))
	for i, img := range cluster.Images {
		cells[i] = []string{string(img.Status), fmt.Sprintf("frame %d", img.FrameIndex), img.URL}
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	start, end := visibleRange(m.images, m.maxVisibleItems(paneImages))
	for idx := start; idx < end; idx++ {
		img := cluster.Images[idx]
		f.addRow(col, paneImages, idx, "images:"+strconv.Itoa(idx), m.imageHover(img))
		col.lines = append(col.lines, itemLine(formatted[idx], m.isCursor(paneImages, idx), imageStyle(img.Status), col.width))
	}
}

func (m *Model) layoutRoster(f *frame, col *column) {
	col.lines = append(col.lines, m.paneTitle("Actors  "+predictedMark+"predicted", paneRoster))
	col.lines = append(col.lines, styledLine{text: m.filterPrompt(), raw: true})
	if len(m.roster.Items) == 0 {
		msg := "(no actors)"
		if m.roster.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.roster.Filter)
		}
		col.lines = append(col.lines, styledLine{text: msg, style: styles.Info})
		return
	}
	start, end := visibleRange(m.roster, m.maxVisibleItems(paneRoster))
	for idx := start; idx < end; idx++ {
		item := m.roster.Items[idx]
		entry := m.rosterEntries[item.ID]
		mark := "  "
		if entry.Selected {
			mark = "✓ "
		}
		// The markers lead the row so truncating a long name never hides them.
		style := styles.Item
		if entry.Predicted {
			mark += predictedMark
			style = styles.Predicted
		} else {
			mark += "  "
		}
		text := mark + entry.Actor.Name
		f.addRow(col, paneRoster, idx, "roster:"+item.ID, m.actorHover(entry.Actor))
		col.lines = append(col.lines, itemLine(text, m.isCursor(paneRoster, idx), style, col.width))
	}
}

func (m *Model) isCursor(p pane, idx int) bool {
	l := m.levelFor(p)
	return l != nil && m.focus == p && l.Cursor == idx
}

func imageStyle(status label.MembershipStatus) *lipgloss.Style {
	switch status {
	case label.StatusDifferent:
		return styles.ImageDifferent
	case label.StatusInvalid:
		return styles.ImageInvalid
	default:
		return styles.ImageSame
	}
}

func (m *Model) headerText() string {
	parts := []string{appTitle}
	if movie, ok := m.stores.Catalog.Selected(); ok {
		parts = append(parts, state.MovieRows([]label.Movie{movie}, 0)[0].Title)
	}
	if m.locationPath != "" {
		parts = append(parts, m.locationPath)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) statusLine() styledLine {
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	if m.stores.Session.Dirty() {
		return styledLine{text: "Unsaved changes are sent when you leave this cluster.", style: styles.Dirty}
	}
	return styledLine{}
}

// itemLine builds a list row with the cursor indicator. width pads the text
// so the highlighted row's background spans the column.
func itemLine(text string, selected bool, style *lipgloss.Style, width int) styledLine {
	indicatorStyle := styles.ItemIndicator
	lineStyle := style
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = highlight(style)
	}
	full := "▌ " + text
	if width > 0 {
		if pad := width - len([]rune(full)); pad > 0 {
			full += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          full,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func highlight(style *lipgloss.Style) *lipgloss.Style {
	if style == nil || style == styles.Item || styles.SelectedItem == nil {
		return styles.SelectedItem
	}
	s := style.Copy().Inherit(*styles.SelectedItem)
	return &s
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

// renderColumn renders lines into exactly height rows of exactly width cells.
func renderColumn(lines []styledLine, width, height int) []string {
	lines = applyWidth(lines, width)
	rows := make([]string, height)
	for i := range rows {
		var row string
		if i < len(lines) {
			row = renderLine(lines[i])
		}
		rows[i] = fitWidth(row, width)
	}
	return rows
}

// fitWidth pads or truncates an ANSI string to width visible cells.
func fitWidth(row string, width int) string {
	w := lipgloss.Width(row)
	if w > width {
		row = truncate.StringWithTail(row, uint(width), "…")
		w = lipgloss.Width(row)
	}
	if w < width {
		row += strings.Repeat(" ", width-w)
	}
	return row
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	for p := paneImages; p < paneCount; p++ {
		m.syncViewport(p)
	}
	return nil
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = line
		result[i].text = text
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderLine(line)
	}
	return strings.Join(out, "\n")
}

func renderLine(line styledLine) string {
	text := line.text
	if line.raw {
		return text
	}
	runes := []rune(text)
	if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
		head := string(runes[:line.highlightFrom])
		tail := string(runes[line.highlightFrom:])
		if line.prefixStyle != nil {
			head = line.prefixStyle.Render(head)
		}
		if line.style != nil {
			tail = line.style.Render(tail)
		}
		return head + tail
	}
	if line.style != nil {
		return line.style.Render(text)
	}
	return text
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
