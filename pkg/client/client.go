package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client provides HTTP client functionality to communicate with an arcboost server
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Config holds client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger // Optional logger for client operations
}

// DefaultConfig returns default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8115/api",
		Timeout: 10 * time.Second,
	}
}

// New creates a new arcboost API client
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8115/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Client{
		baseURL: config.BaseURL,
		logger:  config.Logger,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// IsReachable checks if the server is running and reachable
func (c *Client) IsReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/state", nil)
	if err != nil {
		c.logger.Debug("Failed to create request for reachability check", "error", err)
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Server unreachable", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Tweaks returns the full catalog grouped by category
func (c *Client) Tweaks(ctx context.Context) ([]TweakGroup, error) {
	var groups []TweakGroup
	if err := c.getJSON(ctx, c.baseURL+"/tweaks", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// State returns the applied-tweak ids and elevation of the server process
func (c *Client) State(ctx context.Context) (State, error) {
	var st State
	if err := c.getJSON(ctx, c.baseURL+"/state", &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Apply runs an apply batch for the given ids (or everything when req.All)
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (BatchResult, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return BatchResult{}, fmt.Errorf("marshal request: %w", err)
	}
	var res BatchResult
	if err := c.postJSON(ctx, c.baseURL+"/apply", data, &res); err != nil {
		return BatchResult{}, err
	}
	return res, nil
}

// RestorePlan previews which tweaks a restore batch would touch
func (c *Client) RestorePlan(ctx context.Context) (RestorePlan, error) {
	var plan RestorePlan
	if err := c.getJSON(ctx, c.baseURL+"/restore/plan", &plan); err != nil {
		return RestorePlan{}, err
	}
	return plan, nil
}

// Restore rolls back every restorable applied tweak
func (c *Client) Restore(ctx context.Context) (BatchResult, error) {
	var res BatchResult
	if err := c.postJSON(ctx, c.baseURL+"/restore", nil, &res); err != nil {
		return BatchResult{}, err
	}
	return res, nil
}

// getJSON performs a GET and decodes the response into out
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// postJSON performs a POST with an optional JSON body and decodes the response
func (c *Client) postJSON(ctx context.Context, url string, body []byte, out any) error {
	var rd *bytes.Reader
	if body == nil {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("HTTP request failed", "error", err, "url", req.URL.String())
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err != nil {
			c.logger.Error("Failed to decode error response", "status", resp.StatusCode)
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		c.logger.Error("API request failed", "error", errorResp.Error, "status", resp.StatusCode)
		return fmt.Errorf("API error: %s", errorResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
