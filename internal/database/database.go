// Package database persists trending search counters.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755
)

// TrendingStore defines the persistence contract for trending searches.
type TrendingStore interface {
	// RecordSearch increments the counter for term, creating the record
	// from first when the term has never been seen.
	RecordSearch(ctx context.Context, term string, first models.Movie) error
	// ListTrending returns at most limit records, highest count first.
	ListTrending(ctx context.Context, limit int) ([]models.TrendingRecord, error)
	// Prune removes records not updated since before and reports how many.
	Prune(ctx context.Context, before time.Time) (int, error)
	// Close releases the underlying storage
	Close() error
}

// Open creates the store selected by driver ("bolt", "sqlite" or "memory").
func Open(driver, path, imageBase string) (TrendingStore, error) {
	switch driver {
	case "bolt", "":
		return NewBolt(path, imageBase)
	case "sqlite":
		return NewSQLite(path, imageBase)
	case "memory":
		return NewMemory(imageBase), nil
	default:
		return nil, apperrors.NewStoreError(fmt.Sprintf("unknown store driver %q", driver), nil)
	}
}

// ensureDir creates the directory holding path.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// normalizedKey rejects terms that carry no searchable text.
func normalizedKey(term string) (string, error) {
	key := models.NormalizeTerm(term)
	if key == "" {
		return "", apperrors.NewStoreError("search term is empty after normalization", nil)
	}
	return key, nil
}

// rankRecords orders by count descending, then key ascending, and applies limit.
func rankRecords(records []models.TrendingRecord, limit int) []models.TrendingRecord {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}
		return records[i].Key < records[j].Key
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStoreError("operation cancelled", err)
	}
	return nil
}
