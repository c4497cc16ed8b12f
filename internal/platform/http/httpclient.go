// Package http holds shared outbound HTTP plumbing.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for outbound calls (webhooks, the identity API).
//
// http.DefaultClient has no timeout, so callers always go through this.
// The transport honours HTTP_PROXY and keeps up to 100 idle connections.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
