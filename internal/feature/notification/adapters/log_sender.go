package adapters

import (
	"context"
	"log/slog"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/notification/usecase"
)

// logSender writes welcome messages to the structured log instead of delivering them.
type logSender struct{}

var _ usecase.WelcomeSender = logSender{}

// NewLogSender creates a WelcomeSender that only logs.
func NewLogSender() usecase.WelcomeSender {
	return logSender{}
}

// SendWelcome logs the welcome message for user.
func (logSender) SendWelcome(ctx context.Context, user entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Info("welcome notification",
		"user_id", user.ID,
		"provider", user.Provider,
		"email", user.Email,
		"phone", user.Phone,
		"message", WelcomeMessage(user),
	)
	return nil
}
