package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
	"github.com/amaumene/gomovies/pkg/logger"
)

func TestFinder_BlankQueryDiscovers(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discovered = []models.Movie{{ID: 1, Title: "Popular"}}
	store := &fakeStore{}
	finder := NewFinder(catalog, store, logger.Discard())

	for _, q := range []string{"", "   ", "\t\n"} {
		movies, err := finder.Find(context.Background(), q)
		require.NoError(t, err)
		assert.Len(t, movies, 1)
	}
	finder.Wait()

	assert.Equal(t, 3, catalog.discoverCalls())
	assert.Empty(t, catalog.searchCalls())
	assert.Empty(t, store.recordCalls())
}

func TestFinder_SearchRecordsFirstResult(t *testing.T) {
	batman := models.Movie{ID: 1, Title: "Batman", PosterPath: "/p.jpg"}
	catalog := newFakeCatalog()
	catalog.results[" batman "] = []models.Movie{batman, {ID: 2, Title: "Batman Returns"}}
	store := &fakeStore{}
	finder := NewFinder(catalog, store, logger.Discard())

	movies, err := finder.Find(context.Background(), " batman ")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	finder.Wait()

	assert.Equal(t, []string{" batman "}, catalog.searchCalls(), "query is sent as typed")
	calls := store.recordCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, " batman ", calls[0].term)
	assert.Equal(t, 1, calls[0].first.ID)
	assert.Equal(t, "Batman", calls[0].first.Title)
}

func TestFinder_NoRecordWithoutResults(t *testing.T) {
	catalog := newFakeCatalog()
	store := &fakeStore{}
	finder := NewFinder(catalog, store, logger.Discard())

	movies, err := finder.Find(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, movies)
	finder.Wait()

	assert.Empty(t, store.recordCalls())
}

func TestFinder_FailedSearchNotRecorded(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.fail(errUpstream)
	store := &fakeStore{}
	finder := NewFinder(catalog, store, logger.Discard())

	_, err := finder.Find(context.Background(), "batman")
	require.Error(t, err)
	assert.True(t, apperrors.IsFetchError(err))
	finder.Wait()

	assert.Empty(t, store.recordCalls())
}

func TestFinder_RecordFailureIsSwallowed(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.results["batman"] = []models.Movie{{ID: 1, Title: "Batman"}}
	store := &fakeStore{recordErr: apperrors.NewStoreError("disk full", nil)}
	finder := NewFinder(catalog, store, logger.Discard())

	movies, err := finder.Find(context.Background(), "batman")
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	finder.Wait()

	assert.Len(t, store.recordCalls(), 1)
}

func TestFinder_WithoutStore(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.results["batman"] = []models.Movie{{ID: 1}}
	finder := NewFinder(catalog, nil, logger.Discard())

	_, err := finder.Find(context.Background(), "batman")
	require.NoError(t, err)
	finder.Wait()

	records, err := finder.Trending(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
