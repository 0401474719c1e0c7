package app

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
)

type fakeCatalog struct {
	mu         sync.Mutex
	searches   []string
	discovers  int
	results    map[string][]models.Movie
	discovered []models.Movie
	err        error
	// gates hold a search until closed, regardless of cancellation
	gates map[string]chan struct{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		results: make(map[string][]models.Movie),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeCatalog) Search(ctx context.Context, term string) ([]models.Movie, error) {
	f.mu.Lock()
	f.searches = append(f.searches, term)
	gate := f.gates[term]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.results[term], nil
}

func (f *fakeCatalog) Discover(ctx context.Context) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discovers++
	if f.err != nil {
		return nil, f.err
	}
	return f.discovered, nil
}

func (f *fakeCatalog) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

func (f *fakeCatalog) discoverCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discovers
}

func (f *fakeCatalog) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type recordCall struct {
	term  string
	first models.Movie
}

type fakeStore struct {
	mu        sync.Mutex
	records   []recordCall
	trending  []models.TrendingRecord
	listErr   error
	recordErr error
}

func (s *fakeStore) RecordSearch(ctx context.Context, term string, first models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recordCall{term: term, first: first})
	return s.recordErr
}

func (s *fakeStore) ListTrending(ctx context.Context, limit int) ([]models.TrendingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.trending, nil
}

func (s *fakeStore) Prune(ctx context.Context, before time.Time) (int, error) {
	return 0, nil
}

func (s *fakeStore) Close() error {
	return nil
}

func (s *fakeStore) recordCalls() []recordCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordCall(nil), s.records...)
}

var errUpstream = apperrors.NewFetchError("TMDB API error: status 500", nil)
