package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovie_PassesThroughUnknownFields(t *testing.T) {
	body := `{"id":1,"title":"Batman","poster_path":"/p.jpg","adult":false,"video":true}`

	var m Movie
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "Batman", m.Title)
	assert.Equal(t, "/p.jpg", m.PosterPath)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))
}

func TestMovie_MarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Movie{ID: 7, Title: "Heat"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, float64(7), decoded["id"])
	assert.Equal(t, "Heat", decoded["title"])
}

func TestMovie_Year(t *testing.T) {
	assert.Equal(t, 1989, Movie{ReleaseDate: "1989-06-23"}.Year())
	assert.Equal(t, 0, Movie{ReleaseDate: ""}.Year())
	assert.Equal(t, 0, Movie{ReleaseDate: "soon"}.Year())
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t, "https://img/t/p/w500/p.jpg", PosterURL("https://img/t/p/w500", "/p.jpg"))
	assert.Equal(t, "https://img/t/p/w500/p.jpg", PosterURL("https://img/t/p/w500/", "p.jpg"))
	assert.Equal(t, "", PosterURL("https://img", ""))
}

func TestMovieListResponse_MissingResults(t *testing.T) {
	var resp MovieListResponse
	require.NoError(t, json.Unmarshal([]byte(`{"page":1}`), &resp))
	assert.NotNil(t, resp.Movies())
	assert.Empty(t, resp.Movies())

	require.NoError(t, json.Unmarshal([]byte(`{"results":[{"id":3}]}`), &resp))
	require.Len(t, resp.Movies(), 1)
	assert.Equal(t, 3, resp.Movies()[0].ID)
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "the dark knight", NormalizeTerm("  The   Dark\tKnight "))
	assert.Equal(t, "", NormalizeTerm("   "))
}

func TestNewTrendingRecord(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	first := Movie{ID: 1, Title: "Batman", PosterPath: "/p.jpg"}

	rec := NewTrendingRecord("Batman", first, "https://img", now)
	assert.Equal(t, "batman", rec.Key)
	assert.Equal(t, "Batman", rec.SearchTerm)
	assert.Equal(t, int64(1), rec.Count)
	assert.Equal(t, "https://img/p.jpg", rec.PosterURL)
	assert.Equal(t, now, rec.CreatedAt)
}
