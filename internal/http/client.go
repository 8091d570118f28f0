// Package http wraps the outbound transport for the action API: request
// shaping, session cookies, and socket-level retries. The action layer
// treats any failure surfaced here as opaque.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// Response is a raw transport response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs the HTTP exchanges of a bot session. It keeps the
// session cookies the wiki sets at login.
type Client struct {
	baseURL   string
	http      *retryablehttp.Client
	userAgent string
	logger    mwapi.Logger
	debug     bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger mwapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables logging of every request and response.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures transport-level retry behavior.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.http.RetryMax = retryMax
		c.http.RetryWaitMin = retryWaitMin
		c.http.RetryWaitMax = retryWaitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport client for the wiki at baseURL (the script
// directory, without the api.php suffix).
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	// Login sets session cookies; every later request must carry them.
	jar, err := cookiejar.New(nil)
	if err == nil {
		retryClient.HTTPClient.Jar = jar
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      retryClient,
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = noopLogger{}
	}

	return client
}

// Do performs one wire request of an action sequence and returns the raw
// response. GET requests carry the encoded parameters in the query string;
// POST requests send them as a form body.
func (c *Client) Do(ctx context.Context, req *mwapi.ActionRequest) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": string(req.Method()),
			"uri":    req.URI(),
		})
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code": httpResp.StatusCode,
			"body_bytes":  len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, fmt.Errorf("wiki returned HTTP %d for %s", httpResp.StatusCode, req.Path())
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req *mwapi.ActionRequest) (*retryablehttp.Request, error) {
	encoded := req.EncodedParams()

	var (
		httpReq *retryablehttp.Request
		err     error
	)

	switch req.Method() {
	case mwapi.MethodPost:
		httpReq, err = retryablehttp.NewRequestWithContext(
			ctx, http.MethodPost, c.baseURL+req.Path(), strings.NewReader(encoded))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		httpReq, err = retryablehttp.NewRequestWithContext(
			ctx, http.MethodGet, c.baseURL+req.URI(), nil)
	}

	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "text/xml")

	return httpReq, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
