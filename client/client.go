package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client talks to the portfolio API. Every call classifies its outcome as
// either an infrastructure failure (TransportError) or an application-level
// rejection (APIError), so callers never have to inspect status codes.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource func() string
	onAuthError func()
	logger      zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenSource sets the function consulted for a bearer token before each
// request. An empty return means the request goes out unauthenticated.
func WithTokenSource(source func() string) Option {
	return func(c *Client) {
		c.tokenSource = source
	}
}

// WithAuthErrorHook registers a callback invoked whenever the server answers
// 401 or 403, so the session layer can drop a stale token.
func WithAuthErrorHook(hook func()) Option {
	return func(c *Client) {
		c.onAuthError = hook
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: log.With().Str("component", "apiClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody matches the error envelope the server writes.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Details string `json:"details"`
}

// do executes one request. body is JSON-encoded when non-nil; a non-nil out
// receives the decoded response. Network failures, 5xx responses and
// undecodable success bodies come back as *TransportError, 4xx responses as
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", op).Msg("request failed to reach server")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Debug().Int("status", resp.StatusCode).Str("op", op).Msg("server error")
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server returned status %d", resp.StatusCode),
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var envelope errorBody
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Field = envelope.Field
			switch {
			case envelope.Message != "":
				apiErr.Message = envelope.Message
			case envelope.Details != "":
				apiErr.Message = envelope.Details
			default:
				apiErr.Message = envelope.Error
			}
		}

		if IsAuth(apiErr) && c.onAuthError != nil {
			c.onAuthError()
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Debug().Err(err).Str("op", op).Msg("undecodable response body")
			return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

// Health pings the server. A nil return means the API answered.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
