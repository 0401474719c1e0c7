package database

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
)

const (
	// Default database filename
	defaultDBFile = "trending.db"

	trendingBucket = "trending"
)

// BoltDB implements TrendingStore on a single BoltDB file. Records are JSON
// documents keyed by normalized term.
type BoltDB struct {
	db        *bolt.DB
	imageBase string
	now       func() time.Time
}

// NewBolt creates a new BoltDB store.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath, imageBase string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, apperrors.NewStoreError("failed to prepare bolt database", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to open bolt database", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(trendingBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, apperrors.NewStoreError("failed to create trending bucket", err)
	}

	return &BoltDB{db: db, imageBase: imageBase, now: time.Now}, nil
}

// Close closes the database connection.
func (s *BoltDB) Close() error {
	return s.db.Close()
}

// RecordSearch increments or creates the record for term inside one
// read-write transaction.
func (s *BoltDB) RecordSearch(ctx context.Context, term string, first models.Movie) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	key, err := normalizedKey(term)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(trendingBucket))
		now := s.now()

		var rec models.TrendingRecord
		if data := b.Get([]byte(key)); data != nil {
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("corrupt record %q: %w", key, err)
			}
			rec.Count++
			rec.UpdatedAt = now
		} else {
			rec = models.NewTrendingRecord(term, first, s.imageBase, now)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return apperrors.NewStoreError(fmt.Sprintf("failed to record search %q", term), err)
	}
	return nil
}

// ListTrending scans the bucket and ranks every record.
func (s *BoltDB) ListTrending(ctx context.Context, limit int) ([]models.TrendingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var records []models.TrendingRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(trendingBucket)).ForEach(func(k, v []byte) error {
			var rec models.TrendingRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt record %q: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list trending searches", err)
	}

	return rankRecords(records, limit), nil
}

// Prune deletes records whose last update is older than before.
func (s *BoltDB) Prune(ctx context.Context, before time.Time) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(trendingBucket))
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var rec models.TrendingRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt record %q: %w", k, err)
			}
			if rec.UpdatedAt.Before(before) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewStoreError("failed to prune trending searches", err)
	}
	return removed, nil
}
