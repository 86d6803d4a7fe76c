// Package authorization calls the external transfer authorization service.
package authorization

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"walletpay/internal/transfer"
	"walletpay/internal/transfer/domain"
)

// Config holds authorization service configuration
type Config struct {
	BaseURL string        `envconfig:"AUTHORIZATION_URL" default:"https://util.devi.tools/api/v2/authorize"`
	Timeout time.Duration `envconfig:"AUTHORIZATION_TIMEOUT" default:"5s"`
}

// Client asks the external service whether a transfer may proceed. Any
// 2xx answer authorizes; everything else, including transport failures,
// does not.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new authorization client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Authorize consults the authorization service for a transfer.
func (c *Client) Authorize(ctx context.Context, t *domain.Transfer) transfer.Decision {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		c.logger.Error("building authorization request", "error", err)
		return transfer.DecisionTransportError
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("authorization service unreachable",
			"error", err,
			"transfer_id", t.ID().String(),
		)
		return transfer.DecisionTransportError
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Info("transfer authorization denied",
			"transfer_id", t.ID().String(),
			"status", resp.StatusCode,
		)
		return transfer.DecisionDenied
	}

	return transfer.DecisionAuthorized
}
