package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rulekit/rulekit/internal/step"
)

// SendNotification is an action that emits a structured log notification and
// optionally posts the same payload as JSON to a webhook URL.
type SendNotification struct {
	level      slog.Level
	title      string
	message    string
	webhookURL string

	logger *slog.Logger
	client *http.Client
}

// NewSendNotification creates an unconfigured SendNotification action.
func NewSendNotification() *SendNotification {
	return &SendNotification{
		level:  slog.LevelInfo,
		logger: slog.Default(),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SendNotification) Name() string {
	return "SendNotification"
}

func (s *SendNotification) Configure(cfg step.Config) error {
	s.title = step.GetString(cfg, "title", "Automation notification")
	s.message = step.GetString(cfg, "message", "")
	s.webhookURL = step.GetString(cfg, "webhook_url", "")

	switch level := step.GetString(cfg, "level", "info"); level {
	case "debug":
		s.level = slog.LevelDebug
	case "info":
		s.level = slog.LevelInfo
	case "warning":
		s.level = slog.LevelWarn
	case "error":
		s.level = slog.LevelError
	default:
		return fmt.Errorf("unknown notification level '%s'", level)
	}

	return nil
}

func (s *SendNotification) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "title",
			Title:   "Notification title",
			Type:    step.FieldTypeString,
			Default: "Automation notification",
		},
		{
			Name:  "message",
			Title: "Notification message",
			Type:  step.FieldTypeString,
		},
		{
			Name:    "level",
			Title:   "Notification level",
			Type:    step.FieldTypeOptions,
			Default: "info",
			Options: []string{"debug", "info", "warning", "error"},
		},
		{
			Name:  "webhook_url",
			Title: "Webhook URL to POST the notification to (optional)",
			Type:  step.FieldTypeString,
		},
	}}
}

func (s *SendNotification) Run(ctx context.Context) error {
	s.logger.Log(ctx, s.level, s.title, "message", s.message)

	if s.webhookURL == "" {
		return nil
	}
	return s.post(ctx)
}

func (s *SendNotification) post(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"title":   s.title,
		"message": s.message,
	})
	if err != nil {
		return fmt.Errorf("could not marshal notification payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create notification request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("could not post notification: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned status %d", response.StatusCode)
	}
	return nil
}
