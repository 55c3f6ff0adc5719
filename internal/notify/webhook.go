package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// WebhookSink posts notifications as JSON to a user-configured endpoint.
type WebhookSink struct {
	url    string
	client *HTTPClient
}

// NewWebhookSink creates a webhook sink targeting the given URL.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: NewHTTPClient(),
	}
}

func (s *WebhookSink) Name() string {
	return "webhook"
}

type webhookPayload struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Icon      string            `json:"icon,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// Send posts the notification to the configured webhook URL.
func (s *WebhookSink) Send(ctx context.Context, notification *model.Notification) error {
	payload := webhookPayload{
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		Icon:      notification.Icon,
		Fields:    notification.Fields,
		Timestamp: notification.Timestamp.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	result := s.client.Send(ctx, s.url, "application/json", body)
	if result.Error != nil {
		return fmt.Errorf("webhook delivery failed after %d attempts: %w", result.Attempts, result.Error)
	}

	return nil
}
