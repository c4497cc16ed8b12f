package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/notification/usecase"
)

// WelcomePayload is the JSON body POSTed to the webhook.
type WelcomePayload struct {
	UserID   string `json:"userId"`
	Provider string `json:"provider"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Message  string `json:"message"`
}

// WebhookSender posts welcome messages to an HTTP endpoint (email/SMS relay).
type WebhookSender struct {
	url    string
	client *http.Client
}

var _ usecase.WelcomeSender = (*WebhookSender)(nil)

// NewWebhookSender creates a WebhookSender. client should carry its own timeout.
func NewWebhookSender(url string, client *http.Client) *WebhookSender {
	return &WebhookSender{url: url, client: client}
}

// SendWelcome posts the payload and treats any non-2xx status as failure.
func (s *WebhookSender) SendWelcome(ctx context.Context, user entity.User) error {
	body, err := json.Marshal(WelcomePayload{
		UserID:   user.ID,
		Provider: string(user.Provider),
		Email:    user.Email,
		Phone:    user.Phone,
		Message:  WelcomeMessage(user),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal welcome payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
