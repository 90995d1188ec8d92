// Package scheduling relays profile, account and post operations to the
// Late scheduling API.
package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/logger"
	"github.com/agenthands/socialhub/internal/upstream"
)

const (
	provider = "Late"

	maxBody = 4 << 20
)

// Response is an upstream answer relayed as-is.
type Response struct {
	Status int
	Body   json.RawMessage
}

func (r *Response) OK() bool { return r.Status >= 200 && r.Status <= 299 }

type Client struct {
	cfg        config.ProviderConfig
	http       *upstream.Client
	noRedirect *upstream.Client
	logger     *zap.Logger
}

func NewClient(cfg config.ProviderConfig, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	// The connect endpoint may answer with a redirect whose Location is the
	// OAuth URL itself; following it would lose that URL.
	stay := *httpClient
	stay.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{
		cfg:        cfg,
		http:       upstream.New(provider, httpClient, log),
		noRedirect: upstream.New(provider, &stay, log),
		logger:     log.With(zap.String("provider", provider)),
	}
}

func (c *Client) Configured() bool { return c.cfg.Configured() }

// Forward sends one request to path and returns the upstream status and
// body without interpreting either. body is JSON-encoded when non-nil.
func (c *Client) Forward(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	resp, err := c.send(ctx, c.http, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, apperr.Transport(provider, err)
	}
	if !json.Valid(data) {
		if len(bytes.TrimSpace(data)) > 0 {
			c.logger.Warn("non-JSON body from scheduling service",
				zap.Int("status", resp.StatusCode),
				zap.String("body", logger.Truncate(string(data), 200)))
		}
		data = nil
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

func (c *Client) send(ctx context.Context, hc *upstream.Client, method, path string, query url.Values, body any) (*http.Response, error) {
	if !c.cfg.Configured() {
		return nil, apperr.NotConfigured(provider)
	}

	target := c.cfg.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("encode %s %s body: %w", method, path, err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build %s %s request: %w", method, path, err))
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("forwarding request", zap.String("method", method), zap.String("path", path))
	return hc.Do(req)
}

// failure turns a non-2xx relay into an error carrying the upstream status.
func (c *Client) failure(op string, r *Response) *apperr.Error {
	message := upstream.ErrorMessage(r.Body)
	if message == "" {
		message = fmt.Sprintf("Failed to %s", op)
	}
	c.logger.Error("scheduling request failed",
		zap.String("op", op),
		zap.Int("status", r.Status),
		zap.String("message", message))
	return &apperr.Error{
		Kind:    apperr.KindUpstream,
		Status:  r.Status,
		Message: message,
		Err:     fmt.Errorf("%s: %s returned status %d", op, provider, r.Status),
	}
}
