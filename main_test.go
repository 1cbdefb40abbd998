package main

import (
	"errors"
	"testing"

	"github.com/atomicstack/face-cluster-labeler/internal/app"
	"github.com/atomicstack/face-cluster-labeler/internal/config"
)

func TestDetectScreenReadsOutputSize(t *testing.T) {
	s := detectScreen(
		func(int) bool { return true },
		func(int) (int, int, error) { return 120, 40, nil },
	)
	if !s.Input || !s.Output || s.Width != 120 || s.Height != 40 {
		t.Fatalf("unexpected screen %#v", s)
	}

	s = detectScreen(
		func(int) bool { return true },
		func(int) (int, int, error) { return 0, 0, errors.New("no size") },
	)
	if s.Error != "no size" || s.Width != 0 {
		t.Fatalf("expected size error recorded, got %#v", s)
	}
}

func TestDetectScreenSkipsSizeWithoutTerminal(t *testing.T) {
	called := false
	s := detectScreen(
		func(int) bool { return false },
		func(int) (int, int, error) {
			called = true
			return 80, 24, nil
		},
	)
	if called || s.Output || s.Width != 0 {
		t.Fatalf("expected no size lookup off a terminal, got %#v (called=%v)", s, called)
	}
}

func TestRequireTerminal(t *testing.T) {
	tty := screen{Input: true, Output: true}
	piped := screen{Input: true}
	if err := requireTerminal(app.Config{}, tty); err != nil {
		t.Fatalf("expected a terminal to be enough, got %v", err)
	}
	if err := requireTerminal(app.Config{}, piped); !errors.Is(err, errNoTerminal) {
		t.Fatalf("expected errNoTerminal for piped output, got %v", err)
	}
	if err := requireTerminal(app.Config{List: true}, screen{}); err != nil {
		t.Fatalf("expected -list to run without a terminal, got %v", err)
	}
}

func TestStartupTracePayload(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			APIURL:    "http://labels.example/api/",
			Location:  "/movies/121614/clusters/3",
			StateFile: "state.json",
			Demo:      true,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		Flags:   map[string]string{"demo": "true"},
		Args:    []string{"-demo"},
	}
	s := screen{Input: true, Output: true, Width: 100, Height: 30}

	payload := startupTracePayload(cfg, s)
	if payload["backend"] != "demo" {
		t.Fatalf("expected demo backend, got %v", payload["backend"])
	}
	if payload["mode"] != "label" {
		t.Fatalf("expected label mode, got %v", payload["mode"])
	}
	if payload["location"] != "/movies/121614/clusters/3" {
		t.Fatalf("unexpected location %v", payload["location"])
	}
	size, ok := payload["size"].(map[string]int)
	if !ok || size["width"] != 100 || size["height"] != 30 {
		t.Fatalf("expected the terminal size, got %v", payload["size"])
	}
	if payload["trace"] != true || payload["logFile"] != "trace.log" {
		t.Fatalf("expected logging settings, got %v/%v", payload["trace"], payload["logFile"])
	}

	cfg.App.Demo = false
	cfg.App.List = true
	cfg.App.Width, cfg.App.Height = 80, 24
	payload = startupTracePayload(cfg, s)
	if payload["backend"] != "http://labels.example/api/" || payload["mode"] != "list" {
		t.Fatalf("unexpected backend/mode %v/%v", payload["backend"], payload["mode"])
	}
	size = payload["size"].(map[string]int)
	if size["width"] != 80 || size["height"] != 24 {
		t.Fatalf("expected a configured size to win, got %v", size)
	}
}
