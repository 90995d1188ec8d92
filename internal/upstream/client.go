// Package upstream is the outbound HTTP plumbing shared by the provider
// clients: one attempt per call, metrics per provider, and non-2xx answers
// mapped into apperr.Upstream.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/logger"
	"github.com/agenthands/socialhub/internal/metrics"
)

const maxErrorBody = 512

type Client struct {
	provider string
	http     *http.Client
	logger   *zap.Logger
}

// New wraps httpClient (http.DefaultClient when nil) for one provider.
func New(provider string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		provider: provider,
		http:     httpClient,
		logger:   log.With(zap.String("provider", provider)),
	}
}

func (c *Client) Provider() string { return c.provider }

// Do sends req once and records its outcome. The caller owns resp.Body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamDuration.WithLabelValues(c.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(c.provider, metrics.OutcomeError).Inc()
		c.logger.Error("upstream request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, apperr.Transport(c.provider, err)
	}

	outcome := metrics.OutcomeOK
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = metrics.OutcomeError
	}
	metrics.UpstreamRequests.WithLabelValues(c.provider, outcome).Inc()
	return resp, nil
}

// GetJSON issues a GET and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return apperr.Internal(fmt.Errorf("build %s request: %w", c.provider, err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		details := ErrorMessage(body)
		c.logger.Error("upstream returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", logger.Truncate(string(body), maxErrorBody)))
		return apperr.Upstream(c.provider, resp.StatusCode, details)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Parse(c.provider+" response", err)
	}
	return nil
}

// ErrorMessage pulls a human-readable message out of a provider error body.
// Providers disagree on the field, so the common ones are tried in order.
func ErrorMessage(body []byte) string {
	var probe struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return logger.Truncate(string(body), 200)
	}
	if probe.Message != "" {
		return probe.Message
	}
	if len(probe.Error) > 0 {
		var s string
		if json.Unmarshal(probe.Error, &s) == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(probe.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return logger.Truncate(string(body), 200)
}
