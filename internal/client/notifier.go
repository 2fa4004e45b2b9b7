package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"post-content-api/internal/metrics"
)

// EventName identifies a workflow notification event
type EventName string

const (
	EventPostSaved   EventName = "post-saved"
	EventPostDeleted EventName = "post-deleted"
	EventFileDeleted EventName = "file-deleted"
)

// Event is a user-facing notification carrying a human-readable message
type Event struct {
	Name       EventName `json:"name"`
	Message    string    `json:"message"`
	OccurredAt string    `json:"occurredAt,omitempty"`
}

// Notifier defines the interface for emitting workflow events
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// httpNotifier delivers events to the notification service over HTTP
type httpNotifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotifier creates a new notification client
func NewNotifier(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) Notifier {
	return &httpNotifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// Notify sends a single event to the notification service.
// Delivery is best-effort: failures are logged and never fail the
// operation that emitted the event.
func (c *httpNotifier) Notify(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/api/internal/notifications", c.baseURL)

	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("Failed to marshal notification event",
			zap.Error(err),
			zap.String("event", string(event.Name)),
		)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		c.logger.Error("Failed to create notification request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send notification",
			zap.Error(err),
			zap.String("event", string(event.Name)),
			zap.Duration("duration", duration),
		)
		// Graceful degradation: log error but don't fail the main operation
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Notification sent",
			zap.String("event", string(event.Name)),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Notification service returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("event", string(event.Name)),
		zap.Duration("duration", duration),
	)

	// Graceful degradation
	return nil
}

// NoOpNotifier is a no-op implementation for when notifications are disabled
type NoOpNotifier struct{}

func NewNoOpNotifier() Notifier {
	return &NoOpNotifier{}
}

func (c *NoOpNotifier) Notify(ctx context.Context, event Event) error {
	return nil
}
