// Package bootstrap wires configuration, the content-model source, the
// schema builder, the node index and the admin server into a running
// application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/zakariaelas/contentgraph/adapters/metrics"
	"github.com/zakariaelas/contentgraph/adapters/nodestore"
	"github.com/zakariaelas/contentgraph/config"
	"github.com/zakariaelas/contentgraph/core/builder"
	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
	"github.com/zakariaelas/contentgraph/core/richtext"
	"github.com/zakariaelas/contentgraph/web"
)

// App is the assembled application.
type App struct {
	holder    *config.Holder
	logger    zerolog.Logger
	store     *nodestore.Store
	collector *metrics.Collector
	gatherer  prometheus.Gatherer

	mu       sync.RWMutex
	snapshot *web.Snapshot

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// New loads configuration, opens the node index and performs the first
// schema build.
func New(configPath string) (*App, error) {
	bootLogger := NewLogger(config.LoggingConfig{Level: "info", Format: "console"})

	holder, err := config.NewHolder(configPath, bootLogger)
	if err != nil {
		return nil, err
	}
	cfg := holder.Get()
	logger := NewLogger(cfg.Logging)

	store, err := nodestore.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())

	app := &App{
		holder:    holder,
		logger:    logger,
		store:     store,
		collector: metrics.New(promReg),
		gatherer:  promReg,
		stopCh:    make(chan struct{}),
	}

	if err := app.Rebuild(); err != nil {
		store.Close()
		return nil, err
	}

	holder.OnChange(func(*config.Config) {
		if err := app.Rebuild(); err != nil {
			logger.Error().Err(err).Msg("rebuild after config change failed")
		}
	})

	return app, nil
}

// Rebuild runs one schema build pass and atomically swaps the served
// snapshot. A failed pass keeps the previous snapshot.
func (a *App) Rebuild() error {
	cfg := a.holder.Get()
	a.collector.BuildsTotal.Inc()

	m, err := model.Load(cfg.Model.Path)
	if err != nil {
		a.collector.BuildErrors.Inc()
		return err
	}

	registry := graph.NewRegistry()
	b := builder.New(builder.Options{
		UseNameForID: cfg.Model.UseNameForID,
		Prefix:       cfg.Model.TypePrefix,
	}, a.logger)

	stats, err := b.Build(m, registry)
	if err != nil {
		a.collector.BuildErrors.Inc()
		return err
	}

	a.collector.BuildDuration.Observe(stats.Duration.Seconds())
	a.collector.TypesEmitted.Set(float64(stats.TypesDeclared))
	a.collector.UnionsEmitted.Set(float64(stats.Unions))
	if n, err := a.store.Count(); err == nil {
		a.collector.NodesIndexed.Set(float64(n))
	}

	snap := &web.Snapshot{
		SDL:     registry.SDL(),
		Types:   summarize(registry),
		BuiltAt: time.Now(),
	}

	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()

	a.logger.Info().
		Int("content_types", stats.ContentTypes).
		Int("types", stats.TypesDeclared).
		Msg("schema snapshot updated")
	return nil
}

// Snapshot returns the currently served schema snapshot.
func (a *App) Snapshot() *web.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Store returns the node index.
func (a *App) Store() *nodestore.Store {
	return a.store
}

// ResolveRichText resolves a rich-text document against the node index,
// scoped to the configured owner.
func (a *App) ResolveRichText(doc *richtext.Document) (nodestore.RichTextLinks, error) {
	return a.store.ResolveRichText(a.holder.Get().Model.Owner, doc)
}

// WatchModel watches the content-model file and rebuilds the schema when
// it changes.
func (a *App) WatchModel() error {
	path, err := filepath.Abs(a.holder.Get().Model.Path)
	if err != nil {
		return fmt.Errorf("absolute model path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	a.watcher = watcher

	// Watch the directory (more reliable for editors that do atomic saves)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch model directory: %w", err)
	}

	go a.watchLoop(filepath.Base(path))

	a.logger.Info().Str("path", path).Msg("watching content model for changes")
	return nil
}

func (a *App) watchLoop(filename string) {
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				a.logger.Debug().Str("event", event.Op.String()).Msg("content model changed")
				if err := a.Rebuild(); err != nil {
					a.logger.Error().Err(err).Msg("rebuild after model change failed")
				}
			}

		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			a.logger.Error().Err(err).Msg("model watcher error")

		case <-a.stopCh:
			return
		}
	}
}

// Run starts the admin server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	cfg := a.holder.Get()

	handler := web.NewHandler(web.Deps{
		Snapshot:       a.Snapshot,
		Logger:         a.logger,
		Metrics:        a.collector,
		Gatherer:       a.gatherer,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", server.Addr).Msg("admin server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	a.holder.WatchSignals()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.Stop()
	return nil
}

// Stop releases watchers and the node index.
func (a *App) Stop() {
	close(a.stopCh)
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.holder.Stop()
	a.store.Close()
}

// summarize lists every declared type for the /types endpoint.
func summarize(registry *graph.Registry) []web.TypeSummary {
	var types []web.TypeSummary
	for _, iface := range registry.Interfaces() {
		types = append(types, web.TypeSummary{Name: iface.Name, Kind: "interface", Fields: len(iface.Fields)})
	}
	for _, obj := range registry.Objects() {
		types = append(types, web.TypeSummary{Name: obj.Name, Kind: "object", Fields: len(obj.Fields)})
	}
	for _, union := range registry.Unions() {
		types = append(types, web.TypeSummary{Name: union.Name, Kind: "union", Members: union.Members})
	}
	return types
}

// NewLogger builds a zerolog logger from logging configuration.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(level).With().Timestamp().Logger()
}
