// Package httputil provides HTTP client utilities with standard configurations.
package httputil

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	maxIdleConns        = 10
	maxIdleConnsPerHost = 4
	idleConnTimeout     = 90 * time.Second
	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
)

// NewHTTPClient creates a new HTTP client with the specified timeout.
// A non-positive timeout falls back to the default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(),
	}
}

// NewTransport returns a pooled transport that honours proxy env variables.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}
}
