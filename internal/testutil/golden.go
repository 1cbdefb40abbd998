// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// NormalizeScreen strips ANSI styling and trailing blanks so rendered views
// compare the same whatever colour profile the test terminal reports.
func NormalizeScreen(output string) string {
	lines := strings.Split(ansi.Strip(output), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// AssertGolden compares a rendered screen against testdata/<goldenName> at
// the repository root. UPDATE_GOLDEN=1 rewrites the file.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", goldenName)
	if err := compareGolden(path, NormalizeScreen(output), os.Getenv("UPDATE_GOLDEN") != ""); err != nil {
		t.Fatal(err)
	}
}

// compareGolden checks output against the file at path, rewriting it first
// when update is set. A missing file is an error, never recorded silently.
func compareGolden(path, output string, update bool) error {
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create testdata dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to update golden: %w", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read golden %s (run with UPDATE_GOLDEN=1 to record it): %w", filepath.Base(path), err)
	}
	if string(data) != output {
		return fmt.Errorf("output mismatch for %s\nexpected:\n%s\nactual:\n%s", filepath.Base(path), string(data), output)
	}
	return nil
}

// RepoRoot walks up from the working directory to the directory holding
// go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
