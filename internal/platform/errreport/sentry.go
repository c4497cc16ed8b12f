// Package errreport forwards unexpected errors to Sentry when a DSN is configured.
package errreport

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

// Init configures the Sentry client. An empty dsn leaves reporting disabled.
func Init(dsn, environment string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return err
	}
	enabled.Store(true)
	slog.Info("sentry error reporting enabled", "environment", environment)
	return nil
}

// Enabled reports whether Init succeeded with a DSN.
func Enabled() bool {
	return enabled.Load()
}

// Capture reports err. It is a no-op when reporting is disabled.
func Capture(err error) {
	if err == nil || !enabled.Load() {
		return
	}
	sentry.CaptureException(err)
}

// CaptureRecovered reports a recovered panic value.
func CaptureRecovered(r any) {
	if !enabled.Load() {
		return
	}
	sentry.CurrentHub().Recover(r)
}

// Flush waits up to timeout for queued events to be sent.
func Flush(timeout time.Duration) {
	if !enabled.Load() {
		return
	}
	sentry.Flush(timeout)
}
