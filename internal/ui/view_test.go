package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/face-cluster-labeler/internal/testutil"
)

func TestMaxVisibleItemsPerPane(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	cases := map[pane]int{paneImages: 23, paneRoster: 25, paneMovies: 13}
	for p, want := range cases {
		if got := m.maxVisibleItems(p); got != want {
			t.Fatalf("%s: expected %d visible rows, got %d", p, want, got)
		}
	}
	m.height = 0
	if got := m.maxVisibleItems(paneImages); got != -1 {
		t.Fatalf("expected unbounded rows without a height, got %d", got)
	}
}

func TestColumnWidthsFillTerminal(t *testing.T) {
	env := newTestEnv(t)
	movies, cluster, roster := env.model.columnWidths()
	if movies != 30 || roster != 30 {
		t.Fatalf("expected side columns of 30, got %d and %d", movies, roster)
	}
	if total := movies + cluster + roster + 2*lipgloss.Width(columnSeparator); total != 120 {
		t.Fatalf("expected columns to fill 120 cells, got %d", total)
	}
}

func TestViewBeforeCatalogLoads(t *testing.T) {
	env := newTestEnv(t)
	view := env.harness.View()
	for _, want := range []string{"Face Cluster Labeler", "Loading movies…", "Waiting for the movie list…"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewHasFixedHeight(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	lines := strings.Split(env.harness.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 120 {
			t.Fatalf("row %d is %d cells wide", i, w)
		}
	}
}

func TestViewShowsClusterDetails(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	view := env.harness.View()
	for _, want := range []string{
		"No information about this cluster in the database.",
		"frame 17",
		"[F4 Mixed]",
		"Labeled clusters: 0.0%",
		"/movies/121614/clusters/1",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "● modified") {
		t.Fatalf("expected clean cluster")
	}

	env.harness.Send(keyPress(tea.KeyEnter))
	view = env.harness.View()
	if !strings.Contains(view, "● modified") {
		t.Fatalf("expected dirty marker after a toggle:\n%s", view)
	}
	if !strings.Contains(view, "Unsaved changes") {
		t.Fatalf("expected unsaved hint on the status line")
	}
}

func TestStatusLinePrefersInfo(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	m := env.model
	if got := m.statusLine().text; got != "" {
		t.Fatalf("expected empty status line, got %q", got)
	}
	m.stores.Session.ToggleImageStatus(0)
	if got := m.statusLine().text; !strings.HasPrefix(got, "Unsaved changes") {
		t.Fatalf("expected unsaved hint, got %q", got)
	}
	m.setInfo("Saving cluster before exit…")
	if got := m.statusLine().text; got != "Saving cluster before exit…" {
		t.Fatalf("expected info to win, got %q", got)
	}
}

func TestFooterToggle(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.ShowFooter = false })
	if strings.Contains(env.harness.View(), "f1-f4 status") {
		t.Fatalf("expected no footer")
	}
	env = newTestEnv(t)
	if !strings.Contains(env.harness.View(), "f1-f4 status") {
		t.Fatalf("expected footer")
	}
}

func TestWindowSizeAppliesWhenNotFixed(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Width = 0
		o.Height = 0
	})
	m := env.model
	env.harness.Send(tea.WindowSizeMsg{Width: 90, Height: 20})
	if m.width != 90 || m.height != 20 {
		t.Fatalf("expected 90x20, got %dx%d", m.width, m.height)
	}

	fixed := newTestEnv(t)
	fixed.harness.Send(tea.WindowSizeMsg{Width: 90, Height: 20})
	if fixed.model.width != 120 || fixed.model.height != 30 {
		t.Fatalf("expected fixed size kept, got %dx%d", fixed.model.width, fixed.model.height)
	}
}

func TestRenderColumnPadsRows(t *testing.T) {
	rows := renderColumn([]styledLine{{text: "abc"}}, 5, 3)
	want := []string{"abc  ", "     ", "     "}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], rows[i])
		}
	}
}

func TestFitWidthTruncates(t *testing.T) {
	if got := fitWidth("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("expected truncated row, got %q", got)
	}
	if got := fitWidth("ab", 4); got != "ab  " {
		t.Fatalf("expected padded row, got %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "h"},
		{"hello", 0, "hello"},
	}
	for _, tc := range cases {
		if got := truncateText(tc.text, tc.width); got != tc.want {
			t.Fatalf("truncateText(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestItemLinePadsSelectedRow(t *testing.T) {
	line := itemLine("abc", true, styles.Item, 10)
	if got := len([]rune(line.text)); got != 10 {
		t.Fatalf("expected padded line of 10 runes, got %d", got)
	}
	if line.style != styles.SelectedItem {
		t.Fatalf("expected selected style")
	}
	if line.prefixStyle != styles.SelectedItemIndicator {
		t.Fatalf("expected selected indicator style")
	}
}

func TestViewGoldenClusterScreen(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Width = 100
		o.Height = 20
	})
	env.start(t)
	env.harness.Send(keyPress(tea.KeyDown))
	env.harness.Send(keyPress(tea.KeyEnter))
	testutil.AssertGolden(t, "cluster_screen.golden", env.harness.View())
}
