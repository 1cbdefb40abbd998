package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "labeler.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestErrorAppendsToConfiguredFile(t *testing.T) {
	path := useTempLog(t)
	Error(errors.New("save failed"))
	Error(nil)
	Errorf("load %d: %s", 3, "timeout")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "save failed") || !strings.Contains(text, "load 3: timeout") {
		t.Fatalf("unexpected log contents %q", text)
	}
	if got := strings.Count(text, "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestTraceOnlyWritesWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file before tracing is enabled")
	}

	SetTraceEnabled(true)
	Trace("cluster.save", map[string]interface{}{"cluster": 4})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode trace entry: %v", err)
	}
	if entry.Event != "cluster.save" || entry.Payload["cluster"] != float64(4) {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	useTempLog(t)
	Configure("  ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected default path, got %q", got)
	}
}
