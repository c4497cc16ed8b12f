package di

import (
	"fmt"

	"booking_backend/internal/feature/notification/adapters"
	"booking_backend/internal/feature/notification/usecase"
	"booking_backend/internal/platform/config"
	"booking_backend/internal/platform/errreport"
	infrahttp "booking_backend/internal/platform/http"
)

// NewWelcomeDispatcher creates the dispatcher for the sender selected by cfg.Notifier.
// Send failures are reported to Sentry when it is enabled.
func NewWelcomeDispatcher(cfg *config.Config) (*usecase.WelcomeDispatcher, error) {
	var sender usecase.WelcomeSender
	switch cfg.Notifier {
	case config.NotifierLog, "":
		sender = adapters.NewLogSender()
	case config.NotifierWebhook:
		if cfg.NotifyWebhookURL == "" {
			return nil, fmt.Errorf("NOTIFY_WEBHOOK_URL is required when NOTIFIER=%s", config.NotifierWebhook)
		}
		sender = adapters.NewWebhookSender(cfg.NotifyWebhookURL, infrahttp.NewHTTPClient(cfg.NotifyTimeout))
	default:
		return nil, fmt.Errorf("unknown NOTIFIER %q", cfg.Notifier)
	}
	return usecase.NewWelcomeDispatcher(sender, cfg.NotifyTimeout, errreport.Capture), nil
}
