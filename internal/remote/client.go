// Package remote talks to the tabular gallery backend over its single HTTP endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

// maxBodyBytes bounds how much of a response we buffer. Item lists carry data URLs, so
// this is deliberately generous.
const maxBodyBytes = 64 << 20

// Client issues fetch-query (GET) and submit-command (POST) requests against one endpoint.
// There are no retries: every failure is returned to the caller immediately.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	timeout  time.Duration
	log      *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("remote endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must be an http(s) URL: %s", endpoint)
	}
	c := &Client{
		endpoint: u,
		timeout:  DefaultTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

func (c *Client) Endpoint() string { return c.endpoint.String() }

// FetchQuery issues GET <endpoint>?action=<action> and returns the raw JSON result.
func (c *Client) FetchQuery(ctx context.Context, action string) (json.RawMessage, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, TransportError{Action: action, Err: err}
	}
	return c.do(req, action)
}

// SubmitCommand issues POST <endpoint> with body {action, ...payload}.
func (c *Client) SubmitCommand(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = action

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode payload: %w", action, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(b))
	if err != nil {
		return nil, TransportError{Action: action, Err: err}
	}
	// Script-hosted backends reject preflighted content types; plain text carries the JSON.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	return c.do(req, action)
}

func (c *Client) do(req *http.Request, action string) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.roundTrip(req, action)
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("method", req.Method),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		c.log.Debug("remote call failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.log.Debug("remote call", append(fields, zap.Int("bytes", len(raw)))...)
	return raw, nil
}

func (c *Client) roundTrip(req *http.Request, action string) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, TransportError{Action: action, Err: err}
	}
	return decodeResult(action, b)
}

// decodeResult validates that b is JSON and maps a top-level "error" field to RemoteError.
func decodeResult(action string, b []byte) (json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, ProtocolError{Action: action, Reason: "empty response"}
	}
	if !json.Valid(b) {
		return nil, ProtocolError{Action: action, Reason: "response is not JSON: " + snippet(b)}
	}
	if b[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, ProtocolError{Action: action, Reason: err.Error()}
		}
		if rawErr, ok := env["error"]; ok && truthy(rawErr) {
			return nil, RemoteError{Action: action, Message: errorMessage(rawErr)}
		}
	}
	return json.RawMessage(b), nil
}

func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// truthy mirrors how script backends are consumed: "", false, 0 and null mean "no error".
func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

func snippet(b []byte) string {
	const limit = 80
	r := []rune(strings.TrimSpace(string(b)))
	if len(r) > limit {
		return string(r[:limit]) + "…"
	}
	return string(r)
}
