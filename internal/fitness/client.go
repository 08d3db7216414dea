// Package fitness is the typed HTTP client for the fitness scheduling
// backend. One service per resource wraps the REST endpoints; the shared
// transport attaches the bearer token, normalizes error bodies and counts
// requests. No responses are cached and nothing is retried here.
package fitness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/metrics"

	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token for a request. The chat identity
// travels in the context; an empty string means unauthenticated and the
// Authorization header is then omitted entirely.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the shared transport for all backend services.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 10s-timeout http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit applies an outbound request limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			if burst <= 0 {
				burst = 5
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient constructs a transport for the given base URL, e.g.
// "http://localhost:8080/api". Tokens may be nil for a purely public
// client.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path, defaultMsg string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, defaultMsg, out, parseAPIError)
}

func (c *Client) post(ctx context.Context, path string, body any, defaultMsg string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, defaultMsg, out, parseAPIError)
}

// postAuth is the login/register variant: the backend's message field is
// surfaced verbatim regardless of status, falling back to the status text.
func (c *Client) postAuth(ctx context.Context, path string, body any, defaultMsg string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, defaultMsg, out, parseAuthError)
}

func (c *Client) put(ctx context.Context, path string, body any, defaultMsg string, out any) error {
	return c.do(ctx, http.MethodPut, path, body, defaultMsg, out, parseAPIError)
}

func (c *Client) delete(ctx context.Context, path, defaultMsg string) error {
	return c.do(ctx, http.MethodDelete, path, nil, defaultMsg, nil, parseAPIError)
}

type errorParser func(status int, raw []byte, defaultMsg string) *APIError

func (c *Client) do(ctx context.Context, method, path string, body any, defaultMsg string, out any, parse errorParser) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Kind: KindTransport, Message: defaultMsg, cause: err}
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindTransport, Message: defaultMsg, cause: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: defaultMsg, cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncBackendRequest(method, path, "error")
		return &APIError{Kind: KindTransport, Message: defaultMsg, cause: err}
	}
	defer resp.Body.Close()

	metrics.IncBackendRequest(method, path, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return parse(resp.StatusCode, raw, defaultMsg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindTransport, Message: defaultMsg, cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) addAuthHeader(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
