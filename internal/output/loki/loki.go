// Package loki pushes grouped log streams to a Loki ingestion endpoint.
package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

// DefaultEndpoint is used when the secret bundle carries no endpoint.
const DefaultEndpoint = "https://logs-prod-us-central1.grafana.net/loki/api/v1/push"

const defaultTimeout = 10 * time.Second

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// Client POSTs a batch of streams as a single Loki push request. One
// attempt per invocation; a rejected or failed push is reported, not
// retried, and redelivery is the host's concern.
type Client struct {
	client *http.Client
}

// New creates a Client with a bounded request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push serializes {"streams": ...} and delivers it with basic auth built
// from the credential bundle.
//
// Missing user id or api key is a benign skip: unconfigured delivery
// credentials must never fail the invocation. A missing endpoint falls
// back to DefaultEndpoint. Statuses below 400 succeed; 400 and up is a
// Failed outcome carrying the response body. Transport errors return an
// error and fail the invocation.
func (c *Client) Push(ctx context.Context, streams []model.Stream, creds model.CredentialBundle) (model.DeliveryOutcome, error) {
	if creds.UserID == "" || creds.APIKey == "" {
		slog.Warn("missing Grafana Cloud credentials",
			"have_user_id", creds.UserID != "",
			"have_api_key", creds.APIKey != "")
		return model.Skipped("missing credentials"), nil
	}

	endpoint := creds.Endpoint
	if endpoint == "" {
		slog.Warn("loki endpoint not set in secret bundle, using default", "endpoint", DefaultEndpoint)
		endpoint = DefaultEndpoint
	}

	body, err := json.Marshal(model.PushRequest{Streams: streams})
	if err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("loki: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("loki: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(creds.UserID, creds.APIKey)

	slog.Info("pushing streams", "count", len(streams), "endpoint", endpoint)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("loki: push: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("loki: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		detail := string(respBody)
		if detail == "" {
			detail = "No response body"
		}
		slog.Error("loki rejected push", "status", resp.StatusCode, "body", detail)
		return model.Failed(resp.StatusCode, detail), nil
	}

	slog.Info("forwarded streams", "count", len(streams))
	return model.Success(len(streams)), nil
}
