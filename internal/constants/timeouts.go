// Package constants defines timeout values used throughout the application.
package constants

import "time"

const (
	// DebounceDelay is the quiet period before a typed query is acted upon.
	DebounceDelay = 500 * time.Millisecond

	// RequestTimeout bounds a single TMDB request.
	RequestTimeout = 30 * time.Second

	// RecordTimeout bounds a background trending update.
	RecordTimeout = 5 * time.Second

	// TrendingTimeout bounds the trending lookup done at mount.
	TrendingTimeout = 5 * time.Second

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout = 10 * time.Second

	// Websocket keepalive
	WSWriteWait  = 10 * time.Second
	WSPongWait   = 60 * time.Second
	WSPingPeriod = (WSPongWait * 9) / 10
)
