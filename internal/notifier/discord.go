package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pauljones0/garden-stock-bot/internal/util"
	"github.com/pauljones0/garden-stock-bot/internal/validator"
)

// ErrWebhookNotConfigured is wrapped by SendError when no destination is set.
var ErrWebhookNotConfigured = errors.New("discord webhook URL is not configured")

// Discord allows 5 requests per 2 seconds per webhook.
const (
	webhookBurst  = 5
	webhookPeriod = 2 * time.Second
)

// FailureKind categorizes a failed send for logging.
type FailureKind string

const (
	FailureTimeout      FailureKind = "timeout"
	FailureHTTPStatus   FailureKind = "http-status"
	FailureNetwork      FailureKind = "network"
	FailureUnconfigured FailureKind = "webhook-unconfigured"
)

// SendError is returned by Send when the webhook did not accept the payload.
type SendError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *SendError) Error() string {
	if e.Kind == FailureHTTPStatus {
		return fmt.Sprintf("discord send failed (%s %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("discord send failed (%s): %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Client posts payloads to a Discord webhook. Each Send is a single attempt.
type Client struct {
	webhookURL  string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func New(webhookURL string, timeout time.Duration) *Client {
	return &Client{
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Every(webhookPeriod/webhookBurst), webhookBurst),
	}
}

// Send posts payload once. A nil error means Discord answered 2xx.
func (c *Client) Send(ctx context.Context, payload Payload) error {
	if c.webhookURL == "" || c.webhookURL == validator.WebhookPlaceholder {
		slog.Error("DISCORD_WEBHOOK_URL is not configured. Skipping send.")
		return &SendError{Kind: FailureUnconfigured, Err: ErrWebhookNotConfigured}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		slog.Warn("Discord send aborted while waiting for rate limiter", "error", err)
		return &SendError{Kind: FailureTimeout, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return &SendError{Kind: FailureNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Info("Sending Discord webhook...")
	resp, err := c.client.Do(req)
	if err != nil {
		kind := FailureNetwork
		if util.IsTimeout(err) {
			kind = FailureTimeout
		}
		slog.Warn("Discord webhook request failed", "kind", kind, "error", err)
		return &SendError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		slog.Info("Discord webhook sent successfully")
		return nil
	}
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	slog.Warn("HTTP error while sending Discord webhook", "status", resp.Status, "body", util.Snippet(bodyBytes, 500))
	return &SendError{
		Kind:       FailureHTTPStatus,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("discord status: %s, body: %s", resp.Status, util.Snippet(bodyBytes, 200)),
	}
}
