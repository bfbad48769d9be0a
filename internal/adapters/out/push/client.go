// Package push implements the Notifier port as a client of the external
// push-notification gateway. The gateway resolves the recipient account's
// registered device tokens and fans the message out across them; this client
// only ever addresses accounts.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ordering/internal/core/domain/services"
)

const defaultTimeout = 10 * time.Second

// notificationRequest is the gateway's wire format for a send request.
type notificationRequest struct {
	AccountID string            `json:"accountId"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

// GatewayClient sends push notifications through the notification gateway's
// HTTP API.
//
// Example:
//
//	client := NewGatewayClient("https://push.internal", "api-key")
//	err := client.SendToUser(ctx, notification)
type GatewayClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewGatewayClient creates a gateway client for the given base URL.
// The API key is sent as a bearer token on every request.
func NewGatewayClient(baseURL, apiKey string) *GatewayClient {
	return &GatewayClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// SendToUser delivers the notification to every registered device of the
// recipient account. A non-2xx gateway response is returned as an error;
// callers treat delivery as best-effort.
func (c *GatewayClient) SendToUser(ctx context.Context, notification services.Notification) error {
	if err := notification.RecipientID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(notificationRequest{
		AccountID: notification.RecipientID.String(),
		Title:     notification.Title,
		Body:      notification.Body,
		Data:      notification.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call notification gateway: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification gateway returned %d: %s", resp.StatusCode, body)
	}

	return nil
}
