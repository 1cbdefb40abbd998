package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRosterFilterNarrowsActors(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	m := env.model

	env.harness.Send(keyPress(tea.KeyTab))
	env.harness.Send(runes("sterl"))
	if len(m.roster.Items) != 1 || m.rosterEntries[m.roster.Items[0].ID].Actor.Name != "Sterling Hayden" {
		t.Fatalf("expected only Sterling Hayden, got %#v", m.roster.Items)
	}
	if !strings.Contains(m.filterPrompt(), "sterl") {
		t.Fatalf("expected prompt to show the query, got %q", m.filterPrompt())
	}

	env.harness.Send(keyPress(tea.KeyEnter))
	id, ok := m.stores.Session.SelectedActor()
	if !ok || id != 12161403 {
		t.Fatalf("expected filtered actor selected, got %v %v", id, ok)
	}

	env.harness.Send(keyPress(tea.KeyBackspace))
	if m.roster.Filter != "ster" {
		t.Fatalf("expected backspace to trim the filter, got %q", m.roster.Filter)
	}
	env.harness.Send(keyPress(tea.KeyCtrlU))
	if m.roster.Filter != "" || len(m.roster.Items) != 5 {
		t.Fatalf("expected ctrl+u to clear the filter, got %q with %d items", m.roster.Filter, len(m.roster.Items))
	}
}

func TestRosterFilterSearchesRoles(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	m := env.model

	env.harness.Send(keyPress(tea.KeyTab))
	env.harness.Send(runes("marlowe"))
	if len(m.roster.Items) != 1 || m.rosterEntries[m.roster.Items[0].ID].Actor.Name != "Elliott Gould" {
		t.Fatalf("expected the role to find Elliott Gould, got %#v", m.roster.Items)
	}
}

func TestFilterIgnoredOutsideRoster(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	m := env.model

	env.harness.Send(runes("x"))
	if m.roster.Filter != "" {
		t.Fatalf("expected typing in the image pane to leave the filter alone, got %q", m.roster.Filter)
	}
}

func TestFilterCursorEditing(t *testing.T) {
	env := newTestEnv(t)
	env.start(t)
	m := env.model

	env.harness.Send(keyPress(tea.KeyTab))
	env.harness.Send(runes("mark"))
	env.harness.Send(keyPress(tea.KeyCtrlA))
	if pos := m.roster.FilterCursorPos(); pos != 0 {
		t.Fatalf("expected cursor at start, got %d", pos)
	}
	env.harness.Send(keyPress(tea.KeyCtrlE))
	if pos := m.roster.FilterCursorPos(); pos != 4 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
	env.harness.Send(keyPress(tea.KeyCtrlW))
	if m.roster.Filter != "" {
		t.Fatalf("expected ctrl+w to delete the word, got %q", m.roster.Filter)
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	if got := m.filterPrompt(); !strings.Contains(got, "(type to search)") {
		t.Fatalf("expected placeholder when unfocused, got %q", got)
	}
	m.focus = paneRoster
	if got := m.filterPrompt(); !strings.Contains(got, "type to search)") {
		t.Fatalf("expected placeholder behind the caret when focused, got %q", got)
	}
}
