// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// probeTimeout bounds a single readiness probe.
const probeTimeout = 2 * time.Second

// Prober reports whether a dependency (the user store) is reachable.
type Prober interface {
	Ping(ctx context.Context) error
}

// NewHealth returns the /healthz handler. probe may be nil, in which case
// the service is always reported healthy.
func NewHealth(probe Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status, body := http.StatusOK, gin.H{"status": "ok"}
		if probe != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
			defer cancel()
			if err := probe.Ping(ctx); err != nil {
				slog.Warn("health probe failed", "error", err)
				status, body = http.StatusServiceUnavailable, gin.H{"status": "unavailable"}
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
