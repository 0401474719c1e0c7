package database

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/gomovies/internal/models"
)

// Memory is a process-local TrendingStore. Nothing survives a restart.
type Memory struct {
	mu        sync.Mutex
	records   map[string]models.TrendingRecord
	imageBase string
	now       func() time.Time
}

func NewMemory(imageBase string) *Memory {
	return &Memory{
		records:   make(map[string]models.TrendingRecord),
		imageBase: imageBase,
		now:       time.Now,
	}
}

func (m *Memory) RecordSearch(ctx context.Context, term string, first models.Movie) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	key, err := normalizedKey(term)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if rec, ok := m.records[key]; ok {
		rec.Count++
		rec.UpdatedAt = now
		m.records[key] = rec
		return nil
	}
	m.records[key] = models.NewTrendingRecord(term, first, m.imageBase, now)
	return nil
}

func (m *Memory) ListTrending(ctx context.Context, limit int) ([]models.TrendingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	records := make([]models.TrendingRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	m.mu.Unlock()

	return rankRecords(records, limit), nil
}

func (m *Memory) Prune(ctx context.Context, before time.Time) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, rec := range m.records {
		if rec.UpdatedAt.Before(before) {
			delete(m.records, key)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Close() error {
	return nil
}
