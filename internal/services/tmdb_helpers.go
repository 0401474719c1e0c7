package services

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
)

func (t *TMDB) checkMemoryCache(cacheKey string) ([]models.Movie, bool) {
	if t.cache == nil {
		return nil, false
	}
	if data, found := t.cache.Get(cacheKey); found {
		if movies, ok := data.([]models.Movie); ok {
			return movies, true
		}
	}
	return nil, false
}

func (t *TMDB) storeMemoryCache(cacheKey string, movies []models.Movie) {
	if t.cache != nil {
		t.cache.Set(cacheKey, movies)
	}
}

func (t *TMDB) validateToken() error {
	if t.token == "" {
		return apperrors.NewTokenMissingError("TMDB")
	}
	if !t.validator.ValidateToken(t.token) {
		t.logger.Errorf("[TMDB] refusing request: malformed token (token: %s)", t.validator.MaskToken(t.token))
		return apperrors.NewFetchError("invalid TMDB token format", nil)
	}
	return nil
}

// fetchMovieList performs one GET and decodes a movie list body.
func (t *TMDB) fetchMovieList(ctx context.Context, path string, params map[string]string, cacheKey string) ([]models.Movie, error) {
	if movies, ok := t.checkMemoryCache(cacheKey); ok {
		t.logger.Debugf("[TMDB] cache hit for %s", cacheKey)
		return movies, nil
	}

	if err := t.validateToken(); err != nil {
		return nil, err
	}

	if err := t.rateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.NewFetchError("rate limiter wait aborted", err)
	}

	t.logger.Debugf("[TMDB] GET %s %v", path, params)

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, apperrors.NewFetchError(fmt.Sprintf("failed to fetch %s", path), err)
	}

	if !resp.IsSuccess() {
		return nil, apperrors.NewFetchError(fmt.Sprintf("TMDB API error: status %d", resp.StatusCode()), nil)
	}

	movies, err := decodeMovieList(resp.Body())
	if err != nil {
		return nil, apperrors.NewFetchError(fmt.Sprintf("failed to decode %s response", path), err)
	}

	t.logger.Debugf("[TMDB] %s returned %d movies", path, len(movies))
	t.storeMemoryCache(cacheKey, movies)
	return movies, nil
}

func decodeMovieList(body []byte) ([]models.Movie, error) {
	var list models.MovieListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	return list.Movies(), nil
}
