// Package constants defines numerical limits.
package constants

const (
	// TrendingLimit is the number of trending searches shown.
	TrendingLimit = 5

	// MaxTrendingLimit caps the limit accepted over HTTP.
	MaxTrendingLimit = 50

	// MaxQueryLength caps accepted query length over HTTP and websocket.
	MaxQueryLength = 200

	// WSMaxMessageSize caps inbound websocket frames.
	WSMaxMessageSize = 4096
)
