// Package anki is a client for the AnkiConnect JSON-RPC endpoint.
//
// Every call is a single POST of {"action", "version", "params"} answered by
// {"result", "error"}. A non-null error field is an application rejection,
// reported verbatim. A refused connection is the only failure reported as
// unreachable, which callers may offer to retry.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/logging"
)

const (
	// DefaultURL is where AnkiConnect listens out of the box.
	DefaultURL = "http://localhost:8765"

	// ProtocolVersion is the AnkiConnect API version requested.
	ProtocolVersion = 6

	// defaultTimeout is the request timeout.
	defaultTimeout = 10 * time.Second

	// defaultCacheTTL is how long discovery results are reused.
	defaultCacheTTL = 5 * time.Minute
)

// Client talks to one AnkiConnect endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithURL sets the endpoint.
func WithURL(url string) ClientOption {
	return func(c *Client) {
		c.url = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithDiscoveryCacheTTL sets how long deck, note type and field lists are
// reused. Zero disables caching.
func WithDiscoveryCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = cache.New(ttl, 2*ttl)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the default endpoint unless overridden.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		url: DefaultURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cache:  cache.New(defaultCacheTTL, 2*defaultCacheTTL),
		logger: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// request is the AnkiConnect request envelope.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// response is the AnkiConnect response envelope.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// call performs one exchange and decodes the result into out, which may be
// nil when the result is not needed.
func (c *Client) call(ctx context.Context, action string, params any, out any) error {
	reqBytes, err := json.Marshal(request{Action: action, Version: ProtocolVersion, Params: params})
	if err != nil {
		return errors.NewServiceError(action, errors.KindTransport, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBytes))
	if err != nil {
		return errors.NewServiceError(action, errors.KindTransport, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("anki request failed", "action", action, "error", err.Error())
		return classifyTransport(ctx, action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewServiceError(action, errors.KindTransport, fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("anki request",
		"action", action,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		return errors.NewServiceError(action, errors.KindTransport,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(body)))
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.NewServiceError(action, errors.KindTransport, fmt.Errorf("unmarshal response: %w", err))
	}

	if envelope.Error != nil {
		return errors.NewServiceError(action, errors.KindApplicationRejected, nil).WithMessage(*envelope.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return errors.NewServiceError(action, errors.KindTransport, fmt.Errorf("unmarshal result: %w", err))
	}
	return nil
}
