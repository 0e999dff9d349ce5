// Package api is the client for the goal-planning backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// BasePath is the fixed prefix of every backend endpoint.
const BasePath = "/api/v1"

// Endpoints.
const (
	EndpointGapAnalysis = "/gap-analysis"
	EndpointOptimize    = "/optimize"
	EndpointSimulate    = "/simulate"
	EndpointAssets      = "/assets"
)

const defaultTimeout = 30 * time.Second

// Client performs single request/response exchanges against the backend.
// It never retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client keeps the
// default. The client is never modified; WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit paces outgoing requests to rps per second with the given burst.
// A request waits for a token; it is never dropped or retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the backend at baseURL (scheme and host, optionally
// a path prefix); BasePath is appended to it.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "gbi",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// AnalyzeGap asks whether a safe-asset-only plan reaches the goal.
func (c *Client) AnalyzeGap(ctx context.Context, goal model.GoalInput) (*model.GapResult, error) {
	var result model.GapResult
	if err := c.post(ctx, EndpointGapAnalysis, goal, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Optimize requests a duration-matched portfolio. A structurally valid
// response with Success=false is returned without error.
func (c *Client) Optimize(ctx context.Context, goal model.GoalInput) (*model.OptimizationResult, error) {
	var result model.OptimizationResult
	if err := c.post(ctx, EndpointOptimize, goal, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Simulate runs the rate sensitivity scenarios for the goal.
func (c *Client) Simulate(ctx context.Context, goal model.GoalInput) (*model.SimulationResult, error) {
	var result model.SimulationResult
	if err := c.post(ctx, EndpointSimulate, goal, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAssets returns the asset universe the optimizer draws from.
func (c *Client) ListAssets(ctx context.Context, eligibleYouthSavings bool) ([]model.Asset, error) {
	q := url.Values{}
	q.Set("eligible_youth_savings", strconv.FormatBool(eligibleYouthSavings))

	var assets []model.Asset
	if err := c.do(ctx, http.MethodGet, EndpointAssets+"?"+q.Encode(), nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: fmt.Sprintf("failed to encode request: %v", err), Err: err}
	}
	return c.do(ctx, http.MethodPost, endpoint, payload, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Endpoint: endpoint, Message: err.Error(), Err: err}
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+BasePath+endpoint, body)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Backend request failed", "endpoint", endpoint, "error", err)
		return &Error{Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to read response: %v", err),
			Err:        err,
		}
	}

	slog.Debug("Backend request completed",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(endpoint, resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to decode response: %v", err),
			Err:        err,
		}
	}
	return nil
}
