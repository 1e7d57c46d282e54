package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"fwwatch/internal/common/errorwrapper"
	"fwwatch/internal/httpclient"

	"github.com/rs/zerolog"
)

// WebhookClient sends message payloads to a Discord webhook URL
type WebhookClient struct {
	logger     zerolog.Logger
	httpClient *httpclient.HTTPClient
	webhookURL string
}

// NewWebhookClient creates a new webhook client bound to webhookURL
func NewWebhookClient(httpClient *httpclient.HTTPClient, webhookURL string, logger zerolog.Logger) *WebhookClient {
	return &WebhookClient{
		logger:     logger.With().Str("component", "DiscordWebhookClient").Logger(),
		httpClient: httpClient,
		webhookURL: webhookURL,
	}
}

// Send posts the payload to the webhook as JSON
func (wc *WebhookClient) Send(ctx context.Context, payload MessagePayload) error {
	if wc.webhookURL == "" {
		wc.logger.Warn().Msg("Webhook URL is not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal webhook payload")
	}

	resp, err := wc.httpClient.Post(ctx, wc.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		wc.logger.Error().Err(err).Msg("Failed to send Discord webhook request")
		return errorwrapper.NewNetworkError(wc.webhookURL, "webhook request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		wc.logger.Error().Int("status_code", resp.StatusCode).Msg("Discord webhook returned non-success status")
		return errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, string(respBody), wc.webhookURL)
	}

	wc.logger.Debug().Msg("Discord webhook notification sent")
	return nil
}
