// Package services provides the movie catalogue client and background jobs.
package services

import (
	"context"

	"github.com/amaumene/gomovies/internal/cache"
	"github.com/amaumene/gomovies/internal/database"
	"github.com/amaumene/gomovies/internal/models"
	"github.com/amaumene/gomovies/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Catalog MovieCatalog
	Cache   cache.Cache
	Store   database.TrendingStore
	Logger  logger.Logger
	Cleanup *CleanupService
}

// MovieCatalog defines the remote movie operations the application needs.
type MovieCatalog interface {
	Search(ctx context.Context, term string) ([]models.Movie, error)
	Discover(ctx context.Context) ([]models.Movie, error)
}

// Close releases the trending store.
func (c *Container) Close() error {
	if c.Cleanup != nil {
		c.Cleanup.Stop()
	}
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
