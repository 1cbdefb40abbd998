package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
	"github.com/atomicstack/face-cluster-labeler/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAPIURL        = "LABELER_API_URL"
	envAssetURL      = "LABELER_ASSET_URL"
	envTimeout       = "LABELER_TIMEOUT"
	envPopupKey      = "LABELER_POPUP_KEY"
	envAllowDeselect = "LABELER_ALLOW_DESELECT"
	envLocation      = "LABELER_LOCATION"
	envStateFile     = "LABELER_STATE_FILE"
	envRefresh       = "LABELER_REFRESH"
	envMetricsAddr   = "LABELER_METRICS_ADDR"
	envWidth         = "LABELER_WIDTH"
	envHeight        = "LABELER_HEIGHT"
	envShowFooter    = "LABELER_FOOTER"
	envTrace         = "LABELER_TRACE"
	envLogFile       = "LABELER_LOG_FILE"
	envDemo          = "LABELER_DEMO"
)

const (
	defaultAPIURL   = "http://localhost:5000/api/"
	defaultPopupKey = "ctrl+p"
	defaultRefresh  = 30 * time.Second
	dotenvFile      = ".env"
)

// Load parses configuration from CLI arguments, the environment and an
// optional .env file in the working directory. Real environment variables win
// over .env entries.
func Load() (Config, error) {
	environ, err := withDotenv(os.Environ(), dotenvFile)
	if err != nil {
		return Config{}, err
	}
	return LoadArgs(os.Args[1:], environ)
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("labeler", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, defaultAPIURL), "base URL of the labeling REST API")
	assetURL := fs.String("asset-url", envOrDefault(env, envAssetURL, ""), "origin serving face and frame images (defaults to the API origin)")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, api.DefaultTimeout), "per-request timeout")
	popupKey := fs.String("popup-key", envOrDefault(env, envPopupKey, defaultPopupKey), "key that toggles the hover preview gate")
	allowDeselect := fs.Bool("allow-deselect", envOrBool(env, envAllowDeselect, true), "selecting the labeled actor again clears the label")
	location := fs.String("location", envOrDefault(env, envLocation, ""), "start at /movies/{id}/clusters/{n} (overrides the state file)")
	stateFile := fs.String("state-file", envOrDefault(env, envStateFile, ""), "file remembering the last location")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaultRefresh), "movie list refresh interval (0 disables)")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve Prometheus metrics on this address")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	list := fs.Bool("list", false, "print the movie catalog as a table and exit")
	demo := fs.Bool("demo", envOrBool(env, envDemo, false), "run against a built-in in-memory backend")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be > 0 (got %s)", *timeout)
	}
	if *refresh < 0 {
		return Config{}, fmt.Errorf("refresh must be >= 0 (got %s)", *refresh)
	}

	cfg := Config{
		App: app.Config{
			APIURL:        *apiURL,
			AssetURL:      *assetURL,
			Timeout:       *timeout,
			PopupKey:      strings.ToLower(strings.TrimSpace(*popupKey)),
			AllowDeselect: *allowDeselect,
			Location:      *location,
			StateFile:     *stateFile,
			Refresh:       *refresh,
			MetricsAddr:   *metricsAddr,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			List:          *list,
			Demo:          *demo,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"apiURL":        *apiURL,
			"assetURL":      *assetURL,
			"timeout":       timeout.String(),
			"popupKey":      *popupKey,
			"allowDeselect": strconv.FormatBool(*allowDeselect),
			"location":      *location,
			"stateFile":     *stateFile,
			"refresh":       refresh.String(),
			"metricsAddr":   *metricsAddr,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
			"list":          strconv.FormatBool(*list),
			"demo":          strconv.FormatBool(*demo),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// withDotenv appends entries from the given .env files that the environment
// does not already define. Missing files are skipped.
func withDotenv(environ []string, paths ...string) ([]string, error) {
	env := parseEnv(environ)
	merged := append([]string(nil), environ...)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for key, value := range values {
			if _, ok := env[key]; ok {
				continue
			}
			env[key] = value
			merged = append(merged, key+"="+value)
		}
	}
	return merged, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if !cfg.App.Demo {
		if err := validateURL("api-url", cfg.App.APIURL); err != nil {
			return err
		}
	}
	if cfg.App.AssetURL != "" {
		if err := validateURL("asset-url", cfg.App.AssetURL); err != nil {
			return err
		}
	}
	if cfg.App.PopupKey == "" {
		return errors.New("popup-key must not be empty")
	}
	return nil
}

func validateURL(name, raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL (got %q)", name, raw)
	}
	return nil
}
