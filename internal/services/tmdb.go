package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/amaumene/gomovies/internal/cache"
	"github.com/amaumene/gomovies/internal/constants"
	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
	"github.com/amaumene/gomovies/pkg/httputil"
	"github.com/amaumene/gomovies/pkg/logger"
	"github.com/amaumene/gomovies/pkg/ratelimiter"
	"github.com/amaumene/gomovies/pkg/security"
)

// TMDBConfig carries everything the movie client needs; nothing is read
// from the environment.
type TMDBConfig struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit int64
	RateBurst int64
}

type TMDB struct {
	client      *resty.Client
	cache       cache.Cache
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
	validator   *security.TokenValidator
	token       string
}

// NewTMDB creates a movie client. cache may be nil to disable response caching.
// A v4 read access token is sent as a bearer token, a 32 character v3 key
// as the api_key query parameter.
func NewTMDB(cfg TMDBConfig, cache cache.Cache, log logger.Logger) *TMDB {
	validator := security.NewTokenValidator()
	token := validator.SanitizeToken(cfg.Token)

	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultTMDBBaseURL
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = constants.TMDBRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = constants.TMDBRateBurst
	}

	client := resty.NewWithClient(httputil.NewHTTPClient(cfg.Timeout)).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(log)

	switch {
	case token == "":
	case validator.IsLegacyAPIKey(token):
		log.Infof("[TMDB] using v3 API key authentication (token: %s)", validator.MaskToken(token))
		client.SetQueryParam("api_key", token)
	case validator.IsReadAccessToken(token):
		client.SetAuthToken(token)
	default:
		log.Warnf("[TMDB] token is neither a read access token nor a v3 API key, sending it as bearer (token: %s)", validator.MaskToken(token))
		client.SetAuthToken(token)
	}

	return &TMDB{
		client:      client,
		cache:       cache,
		rateLimiter: ratelimiter.NewTokenBucket(cfg.RateBurst, cfg.RateLimit),
		logger:      log,
		validator:   validator,
		token:       token,
	}
}

// Search runs a keyword search. Blank terms never reach the API.
func (t *TMDB) Search(ctx context.Context, term string) ([]models.Movie, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewFetchError("search term is blank", nil)
	}
	return t.fetchMovieList(ctx, constants.SearchMoviePath, map[string]string{"query": term}, "search:"+term)
}

// Discover lists movies by popularity, most popular first.
func (t *TMDB) Discover(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovieList(ctx, constants.DiscoverMoviePath,
		map[string]string{"sort_by": constants.DiscoverSortBy}, "discover:"+constants.DiscoverSortBy)
}
