package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
	"github.com/atomicstack/face-cluster-labeler/internal/backend"
	"github.com/atomicstack/face-cluster-labeler/internal/fakebackend"
	"github.com/atomicstack/face-cluster-labeler/internal/label"
	"github.com/atomicstack/face-cluster-labeler/internal/location"
	"github.com/atomicstack/face-cluster-labeler/internal/logging"
	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
	"github.com/atomicstack/face-cluster-labeler/internal/metrics"
	"github.com/atomicstack/face-cluster-labeler/internal/nav"
	"github.com/atomicstack/face-cluster-labeler/internal/state"
	"github.com/atomicstack/face-cluster-labeler/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	APIURL        string
	AssetURL      string
	Timeout       time.Duration
	PopupKey      string
	AllowDeselect bool
	Location      string
	StateFile     string
	Refresh       time.Duration
	MetricsAddr   string
	Width         int
	Height        int
	ShowFooter    bool
	List          bool
	Demo          bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiURL := cfg.APIURL
	if cfg.Demo {
		url, stop, err := startDemoBackend()
		if err != nil {
			return fmt.Errorf("start demo backend: %w", err)
		}
		defer stop()
		apiURL = url
	}

	m := metrics.New()
	client, err := api.New(apiURL, api.WithTimeout(cfg.Timeout), api.WithObserver(m))
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	if cfg.List {
		return listMovies(ctx, client, os.Stdout)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Error(fmt.Errorf("metrics server: %w", err))
			}
		}()
	}

	file := location.NewFile(cfg.StateFile)
	movieID, clusterID := startPosition(cfg.Location, file)

	stores := state.NewContext(state.SessionOptions{AllowDeselect: cfg.AllowDeselect})
	defer stores.Close()
	controller := nav.New(client, stores, nav.WithMetrics(m), nav.WithTimeout(cfg.Timeout))

	watcher := backend.NewWatcher(client, cfg.Refresh, cfg.Timeout)
	defer watcher.Stop()

	assetBase := cfg.AssetURL
	if assetBase == "" {
		assetBase = client.Origin()
	}

	model := ui.NewModel(ui.Options{
		Controller:   controller,
		Watcher:      watcher,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		PopupKey:     cfg.PopupKey,
		AssetBase:    assetBase,
		Location:     file,
		StartMovie:   movieID,
		StartCluster: clusterID,
		Animate:      true,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	events.App.Stop("exit")
	return err
}

// startPosition resolves the initial location: an explicit path wins over the
// persisted one. Unparseable paths start at the first cluster of the first
// movie.
func startPosition(explicit string, file *location.File) (int64, int) {
	path := explicit
	if path == "" {
		stored, err := file.Load()
		if err != nil {
			logging.Error(err)
		}
		path = stored
	}
	if path == "" {
		return 0, 0
	}
	events.App.Location(path)
	return location.Parse(path)
}

// startDemoBackend serves the built-in dataset on a loopback port.
func startDemoBackend() (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: fakebackend.New(fakebackend.Demo())}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(fmt.Errorf("demo backend: %w", err))
		}
	}()
	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return "http://" + ln.Addr().String() + fakebackend.Prefix + "/", stop, nil
}

type movieLister interface {
	Movies(ctx context.Context) ([]label.Movie, error)
}

// listMovies prints the catalog with labeling progress and exits.
func listMovies(ctx context.Context, source movieLister, w io.Writer) error {
	movies, err := source.Movies(ctx)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Movie", "Year", "Clusters", "Labeled", "Progress"})
	for _, movie := range movies {
		tw.AppendRow(table.Row{
			movie.ID,
			movie.Name,
			movie.Year,
			movie.ClusterCount,
			movie.LabeledClusterCount,
			fmt.Sprintf("%.1f%%", movie.Progress()),
		})
	}
	configs := make([]table.ColumnConfig, 0, 6)
	for i := 1; i <= 6; i++ {
		align := text.AlignRight
		if i == 2 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{Number: i, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	return nil
}
