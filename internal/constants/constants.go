// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName        = "gomovies"
	AppVersion     = "1.0.0"
	AppDescription = "Find movies you will enjoy without the hassle"

	// Default configuration values
	DefaultPort        = "5000"
	DefaultLogLevel    = "info"
	DefaultLogFile     = "gomovies.log"
	DefaultStoreDriver = "bolt"
	DefaultDBPath      = "./trending.db"

	// TMDB endpoints
	DefaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	SearchMoviePath     = "/search/movie"
	DiscoverMoviePath   = "/discover/movie"
	DiscoverSortBy      = "popularity.desc"

	// Cache settings
	DefaultCacheSize = 500
	DefaultCacheTTL  = 10 // minutes

	// Rate limiting
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 40 // burst capacity

	// FetchErrorMessage is the only failure text ever shown to the user.
	FetchErrorMessage = "Something went wrong in fetching data."
)
