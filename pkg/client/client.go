// Package client wraps the prediction service's three endpoints behind a
// minimal fire-once API. There are no retries, timeouts, or caches here;
// callers own any policy on top.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-riskform/pkg/schema"
)

// DefaultBaseURL is used when neither an option nor the environment supplies
// a service address.
const DefaultBaseURL = "http://localhost:8000"

// EnvBaseURL names the environment variable consulted for the base address.
const EnvBaseURL = "RISKFORM_API_BASE"

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the service base address.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient injects the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client issues requests against a configured prediction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client. The base address resolves in order: WithBaseURL,
// the RISKFORM_API_BASE environment variable, then DefaultBaseURL.
func New(options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	if env := strings.TrimSpace(os.Getenv(EnvBaseURL)); env != "" {
		c.baseURL = env
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// BaseURL reports the resolved service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Schema fetches the field schema used to build the form.
func (c *Client) Schema(ctx context.Context) (schema.FieldSchema, error) {
	var out schema.FieldSchema
	if err := c.get(ctx, "/schema", MsgSchemaFailed, &out); err != nil {
		return schema.FieldSchema{}, err
	}
	return out, nil
}

// Metrics fetches the model evaluation metrics snapshot.
func (c *Client) Metrics(ctx context.Context) (schema.MetricsSnapshot, error) {
	var out schema.MetricsSnapshot
	if err := c.get(ctx, "/metrics", MsgMetricsFailed, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Predict submits a payload and returns the prediction. The payload is sent
// as {"payload": {...}} to match the service contract.
func (c *Client) Predict(ctx context.Context, payload schema.Payload) (*schema.PredictionResult, error) {
	body, err := json.Marshal(map[string]any{"payload": payload})
	if err != nil {
		return nil, fmt.Errorf("client: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out schema.PredictionResult
	if err := c.do(req, MsgPredictFailed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path, failureMsg string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, failureMsg, out)
}

func (c *Client) do(req *http.Request, failureMsg string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures keep the underlying message.
		return fmt.Errorf("client: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{
			Code:    resp.StatusCode,
			Message: failureMessage(resp.Body, failureMsg),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// failureMessage prefers the service's own detail string over the fixed
// per-endpoint message when the error body carries one.
func failureMessage(body io.Reader, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if detail := strings.TrimSpace(payload.Detail); detail != "" {
			return detail
		}
	}
	return fallback
}
