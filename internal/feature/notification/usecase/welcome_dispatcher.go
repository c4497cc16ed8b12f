// Package usecase dispatches best-effort notifications for the notification feature.
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking_backend/internal/feature/identity/domain/entity"
)

// defaultSendTimeout bounds a single welcome send when none is configured.
const defaultSendTimeout = 5 * time.Second

// WelcomeSender delivers a welcome message to a newly registered user.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, user entity.User) error
}

// ErrorReporter receives send failures in addition to the log (e.g. Sentry).
type ErrorReporter func(err error)

// WelcomeDispatcher runs welcome sends in the background.
// A send never blocks or fails the caller; errors are only logged.
type WelcomeDispatcher struct {
	sender  WelcomeSender
	timeout time.Duration
	report  ErrorReporter

	wg sync.WaitGroup
}

// NewWelcomeDispatcher creates a dispatcher. A non-positive timeout defaults to 5s; report may be nil.
func NewWelcomeDispatcher(sender WelcomeSender, timeout time.Duration, report ErrorReporter) *WelcomeDispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &WelcomeDispatcher{
		sender:  sender,
		timeout: timeout,
		report:  report,
	}
}

// NotifyWelcome starts a send for user and returns immediately.
// The send is detached from any request context and bounded by the dispatcher timeout.
func (d *WelcomeDispatcher) NotifyWelcome(user entity.User) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("welcome notification panicked", "user_id", user.ID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.SendWelcome(ctx, user); err != nil {
			slog.Error("welcome notification failed", "user_id", user.ID, "provider", user.Provider, "error", err)
			if d.report != nil {
				d.report(err)
			}
			return
		}
		slog.Debug("welcome notification sent", "user_id", user.ID)
	}()
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *WelcomeDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
