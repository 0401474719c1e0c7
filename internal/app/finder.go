package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/amaumene/gomovies/internal/constants"
	"github.com/amaumene/gomovies/internal/database"
	"github.com/amaumene/gomovies/internal/models"
	"github.com/amaumene/gomovies/internal/services"
	"github.com/amaumene/gomovies/pkg/logger"
)

// Searcher is what a Controller needs to fill its state.
type Searcher interface {
	Find(ctx context.Context, query string) ([]models.Movie, error)
	Trending(ctx context.Context, limit int) ([]models.TrendingRecord, error)
}

// Finder routes queries to the catalogue and counts successful searches.
type Finder struct {
	catalog       services.MovieCatalog
	store         database.TrendingStore
	logger        logger.Logger
	recordTimeout time.Duration
	wg            sync.WaitGroup
}

func NewFinder(catalog services.MovieCatalog, store database.TrendingStore, log logger.Logger) *Finder {
	return &Finder{
		catalog:       catalog,
		store:         store,
		logger:        log,
		recordTimeout: constants.RecordTimeout,
	}
}

// Find discovers popular movies for a blank query and searches otherwise.
// The query is sent as typed. A search that returns movies is recorded in
// the trending store in the background; that outcome never affects the
// returned result.
func (f *Finder) Find(ctx context.Context, query string) ([]models.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return f.catalog.Discover(ctx)
	}

	movies, err := f.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(movies) > 0 {
		f.recordAsync(query, movies[0])
	}
	return movies, nil
}

// Trending lists the most searched terms.
func (f *Finder) Trending(ctx context.Context, limit int) ([]models.TrendingRecord, error) {
	if f.store == nil {
		return []models.TrendingRecord{}, nil
	}
	return f.store.ListTrending(ctx, limit)
}

// Wait blocks until every background recording has finished.
func (f *Finder) Wait() {
	f.wg.Wait()
}

func (f *Finder) recordAsync(query string, first models.Movie) {
	if f.store == nil {
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), f.recordTimeout)
		defer cancel()

		if err := f.store.RecordSearch(ctx, query, first); err != nil {
			f.logger.Warnf("[Finder] failed to record search %q: %v", query, err)
			return
		}
		f.logger.Debugf("[Finder] recorded search %q (first result %d)", query, first.ID)
	}()
}
