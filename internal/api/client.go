// Package api is the HTTP gateway to the reservation backend. It attaches
// bearer tokens at call time, transparently refreshes an expired access
// token once per request, and surfaces every non-2xx response as a
// structured *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/config"
	"github.com/reservekit/reserve-client/internal/observability"
	"github.com/reservekit/reserve-client/internal/storage"
	"github.com/reservekit/reserve-client/internal/token"
)

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Auth marks the request as requiring authentication. The bearer token
	// is read from the token store when the request is sent, never earlier.
	Auth bool
}

// Response is a successful backend reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// errorEnvelope is the backend's error body.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client wraps http.Client with the gateway behavior. The cookie jar keeps
// the HttpOnly refresh cookie issued on sign-in, which is what the
// token-refresh endpoint authenticates against.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  *token.Store
	log     *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a gateway for the configured base URL. The refresh
// cookie is kept in a jar persisted to the same storage as the rest of the
// client state, so refresh keeps working across process restarts.
func NewClient(cfg config.APIConfig, tokens *token.Store, st storage.Storage, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout(), Jar: NewJar(st)},
		tokens:  tokens,
		log:     logger,
		metrics: observability.NewMetrics(),
	}, nil
}

// Metrics exposes the request counters.
func (c *Client) Metrics() *observability.Metrics {
	return c.metrics
}

// Do executes the request. When an authenticated call fails with an
// expired-access-token error, the client refreshes once and retries the
// original request with the new token; if the refresh fails too, the
// original error is returned and the token store is cleared. An
// expired-refresh-token error clears the token store without retrying.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err == nil {
		return resp, nil
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return nil, err
	}

	switch {
	case req.Auth && apiErr.Status == http.StatusUnauthorized && apiErr.Code == CodeExpiredAccessToken:
		c.log.Debug("access token expired, refreshing", zap.String("path", req.Path))
		if _, refreshErr := c.RefreshToken(ctx); refreshErr != nil {
			c.log.Warn("token refresh failed", zap.Error(refreshErr))
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.log.Error("failed to clear token store", zap.Error(clearErr))
			}
			return nil, err
		}
		return c.send(ctx, req)
	case apiErr.Code == CodeExpiredRefreshToken:
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.log.Error("failed to clear token store", zap.Error(clearErr))
		}
		return nil, err
	}

	return nil, err
}

// JSON executes the request and decodes the response body into out.
func (c *Client) JSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

// CreatedID executes a resource-creating request and returns the new id
// from the Location response header.
func (c *Client) CreatedID(ctx context.Context, req Request) (string, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusCreated {
		return "", fmt.Errorf("%s %s: expected 201, got %d", req.Method, req.Path, resp.Status)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("%s %s: missing Location header", req.Method, req.Path)
	}
	id := location[strings.LastIndex(location, "/")+1:]
	if id == "" {
		return "", fmt.Errorf("%s %s: malformed Location header %q", req.Method, req.Path, location)
	}
	return id, nil
}

// RefreshToken exchanges the refresh cookie for a new access token and
// stores it. The refresh call itself is never auto-retried.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, Request{Method: http.MethodPost, Path: "/token-refresh"})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Code == CodeExpiredRefreshToken {
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.log.Error("failed to clear token store", zap.Error(clearErr))
			}
		}
		return "", err
	}
	tok := resp.Header.Get("Authorization")
	if tok == "" {
		return "", fmt.Errorf("token refresh: missing Authorization header")
	}
	if err := c.tokens.Set(tok); err != nil {
		return "", err
	}
	return tok, nil
}

// AccessToken extracts the token from an Authorization response header and
// stores it. Used by the sign-in flow.
func (c *Client) AccessToken(resp *Response) (string, error) {
	tok := resp.Header.Get("Authorization")
	if tok == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	if err := c.tokens.Set(tok); err != nil {
		return "", err
	}
	return tok, nil
}

func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + req.Path
	if req.Query != nil {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, err
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.Auth {
		if tok, ok := c.tokens.Get(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", req.Method, req.Path, err)
	}

	duration := time.Since(start)
	c.metrics.RecordRequest(req.Method, req.Path, httpResp.StatusCode, duration)
	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", duration),
	)

	if httpResp.StatusCode >= 400 {
		var envelope errorEnvelope
		_ = json.Unmarshal(raw, &envelope)
		c.metrics.RecordError(req.Method, req.Path, envelope.Code)
		return nil, &Error{
			Status:  httpResp.StatusCode,
			Code:    envelope.Code,
			Message: envelope.Message,
		}
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   raw,
	}, nil
}
