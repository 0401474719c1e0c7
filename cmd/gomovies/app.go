package main

import (
	"io"
	"os"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/cache"
	"github.com/amaumene/gomovies/internal/config"
	"github.com/amaumene/gomovies/internal/database"
	"github.com/amaumene/gomovies/internal/services"
	"github.com/amaumene/gomovies/pkg/logger"
)

// deps is everything a command needs once configuration is loaded.
type deps struct {
	logger    logger.Logger
	container *services.Container
	finder    *app.Finder
}

func (d *deps) Close() {
	if err := d.container.Close(); err != nil {
		d.logger.Errorf("[App] failed to close trending store: %v", err)
	}
}

// newCLILogger keeps stdout free for command output.
func newCLILogger(cfg *config.Config) logger.Logger {
	return logger.NewWithOptions(cfg.LogLevel, os.Stderr)
}

// openLogFile opens the TUI log destination in append mode.
func openLogFile(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// InitializeStore opens the configured trending store. A store that cannot
// be opened, for instance a bolt file locked by another gomovies process,
// is replaced by an in-memory one so searching keeps working.
func InitializeStore(cfg *config.Config, log logger.Logger) database.TrendingStore {
	store, err := database.Open(cfg.StoreDriver, cfg.DatabasePath, cfg.ImageBaseURL)
	if err != nil {
		log.Warnf("[App] trending store unavailable, keeping trending in memory for this run: %v", err)
		return database.NewMemory(cfg.ImageBaseURL)
	}

	if cfg.StoreDriver == config.DriverMemory {
		log.Infof("[App] in-memory trending store initialized")
	} else {
		log.Infof("[App] %s trending store initialized at %s", cfg.StoreDriver, cfg.DatabasePath)
	}
	return store
}

func InitializeServices(cfg *config.Config, log logger.Logger, store database.TrendingStore) *services.Container {
	var movieCache cache.Cache
	if cfg.CacheSize > 0 {
		movieCache = cache.New(cfg.CacheSize, cfg.CacheTTL())
	}

	tmdb := services.NewTMDB(services.TMDBConfig{
		BaseURL: cfg.TMDBBaseURL,
		Token:   cfg.TMDBToken,
		Timeout: cfg.RequestTimeout(),
	}, movieCache, log)

	cleanup := services.NewCleanupService(store, log)
	if retention := cfg.TrendingRetention(); retention > 0 {
		cleanup.SetRetentionPeriod(retention)
	}

	log.Infof("[App] services initialized (TMDB %s, token %s)", cfg.TMDBBaseURL, cfg.MaskedToken())

	return &services.Container{
		Catalog: tmdb,
		Cache:   movieCache,
		Store:   store,
		Logger:  log,
		Cleanup: cleanup,
	}
}

func initialize(cfg *config.Config, log logger.Logger) *deps {
	store := InitializeStore(cfg, log)
	container := InitializeServices(cfg, log, store)
	return &deps{
		logger:    log,
		container: container,
		finder:    app.NewFinder(container.Catalog, container.Store, log),
	}
}
