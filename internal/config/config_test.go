package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.APIURL != defaultAPIURL {
		t.Fatalf("unexpected api url %q", cfg.App.APIURL)
	}
	if cfg.App.Timeout != 2*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.App.Timeout)
	}
	if !cfg.App.AllowDeselect {
		t.Fatalf("deselect should default to enabled")
	}
	if cfg.App.PopupKey != "ctrl+p" || cfg.App.Refresh != defaultRefresh {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsEnvAndFlags(t *testing.T) {
	env := []string{
		envAPIURL + "=http://env.example/api",
		envAllowDeselect + "=false",
		envTimeout + "=5s",
		envWidth + "=80",
		envRefresh + "=bogus",
	}
	cfg, err := LoadArgs([]string{"-api-url", "http://flag.example/api", "-popup-key", " CTRL+X ", "-location", "/movies/1/clusters/2"}, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.APIURL != "http://flag.example/api" {
		t.Fatalf("flag should override env, got %q", cfg.App.APIURL)
	}
	if cfg.App.AllowDeselect {
		t.Fatalf("env should disable deselect")
	}
	if cfg.App.Timeout != 5*time.Second || cfg.App.Width != 80 {
		t.Fatalf("unexpected env values %+v", cfg.App)
	}
	if cfg.App.Refresh != defaultRefresh {
		t.Fatalf("invalid env duration should fall back, got %s", cfg.App.Refresh)
	}
	if cfg.App.PopupKey != "ctrl+x" {
		t.Fatalf("popup key should be normalised, got %q", cfg.App.PopupKey)
	}
	if cfg.Flags["location"] != "/movies/1/clusters/2" {
		t.Fatalf("expected location flag in trace map")
	}
}

func TestLoadArgsRejectsInvalid(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-2"},
		{"-timeout", "0s"},
		{"-refresh", "-1s"},
		{"-unknown"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-api-url", "localhost:5000"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("relative api url should fail validation")
	}
	cfg, _ = LoadArgs([]string{"-api-url", "localhost:5000", "-demo"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("demo mode ignores the api url: %v", err)
	}
	cfg, _ = LoadArgs([]string{"-popup-key", " "}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("empty popup key should fail validation")
	}
}

func TestWithDotenvKeepsRealEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "LABELER_API_URL=http://dotenv.example/api\nLABELER_FOOTER=false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	environ, err := withDotenv([]string{envAPIURL + "=http://real.example/api"}, path)
	if err != nil {
		t.Fatalf("withDotenv returned error: %v", err)
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.APIURL != "http://real.example/api" {
		t.Fatalf("real env should win, got %q", cfg.App.APIURL)
	}
	if cfg.App.ShowFooter {
		t.Fatalf(".env should fill unset values")
	}
}

func TestWithDotenvMissingFile(t *testing.T) {
	environ, err := withDotenv([]string{"A=1"}, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
	if len(environ) != 1 {
		t.Fatalf("unexpected environ %v", environ)
	}
}
