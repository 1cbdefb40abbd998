package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/face-cluster-labeler/internal/app"
	"github.com/atomicstack/face-cluster-labeler/internal/config"
	"github.com/atomicstack/face-cluster-labeler/internal/logging"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	screen := detectScreen(term.IsTerminal, term.GetSize)
	if err := requireTerminal(cfg.App, screen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	events.App.Start(startupTracePayload(cfg, screen))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errNoTerminal = errors.New("the labeler needs an interactive terminal; use -list for plain output")

// screen describes the terminal the labeler is about to draw on.
type screen struct {
	Input  bool   `json:"input"`
	Output bool   `json:"output"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// detectScreen checks stdin and stdout and reads the size from stdout.
func detectScreen(isTerminal func(int) bool, getSize func(int) (int, int, error)) screen {
	out := int(os.Stdout.Fd())
	s := screen{
		Input:  isTerminal(int(os.Stdin.Fd())),
		Output: isTerminal(out),
	}
	if !s.Output {
		return s
	}
	if width, height, err := getSize(out); err == nil {
		s.Width, s.Height = width, height
	} else {
		s.Error = err.Error()
	}
	return s
}

// requireTerminal refuses to start the labeling screen without a terminal on
// both ends. Listing movies prints plain text and runs anywhere.
func requireTerminal(cfg app.Config, s screen) error {
	if cfg.List || (s.Input && s.Output) {
		return nil
	}
	return errNoTerminal
}

// startupTracePayload records where the session points and what it draws on.
func startupTracePayload(cfg config.Config, s screen) map[string]interface{} {
	backend := cfg.App.APIURL
	if cfg.App.Demo {
		backend = "demo"
	}
	mode := "label"
	if cfg.App.List {
		mode = "list"
	}
	size := map[string]int{"width": s.Width, "height": s.Height}
	if cfg.App.Width > 0 && cfg.App.Height > 0 {
		size = map[string]int{"width": cfg.App.Width, "height": cfg.App.Height}
	}
	payload := map[string]interface{}{
		"mode":     mode,
		"backend":  backend,
		"location": cfg.App.Location,
		"state":    cfg.App.StateFile,
		"metrics":  cfg.App.MetricsAddr,
		"size":     size,
		"screen":   s,
		"flags":    cfg.Flags,
		"argv":     cfg.Args,
		"trace":    cfg.Logging.Trace,
		"logFile":  cfg.Logging.FilePath,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}
