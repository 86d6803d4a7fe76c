// Package notification delivers transfer outcome notifications to users
// through an external notification service.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Config holds notification service configuration
type Config struct {
	BaseURL string        `envconfig:"NOTIFICATION_URL" default:"https://util.devi.tools/api/v1/notify"`
	Timeout time.Duration `envconfig:"NOTIFICATION_TIMEOUT" default:"5s"`
}

// Notification is the payload delivered to the notification service.
type Notification struct {
	TransferID string `json:"transfer_id"`
	PayerID    string `json:"payer_id"`
	PayeeID    string `json:"payee_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

// Client posts notifications to the external service.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new notification client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Send delivers a notification. A non-2xx answer is an error so the
// caller can retry.
func (c *Client) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshaling notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	c.logger.Debug("notification delivered",
		"transfer_id", n.TransferID,
		"status", n.Status,
	)

	return nil
}
