package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/upstream"
)

// urlStrategy extracts an OAuth URL from one upstream answer shape.
type urlStrategy struct {
	name    string
	extract func(resp *http.Response, body []byte) string
}

// connectStrategies are tried in order; the first non-empty URL wins. The
// redirect and JSON shapes are equally valid answers.
var connectStrategies = []urlStrategy{
	{name: "location", extract: func(resp *http.Response, _ []byte) string {
		if resp.StatusCode >= 300 && resp.StatusCode <= 399 {
			return resp.Header.Get("Location")
		}
		return ""
	}},
	{name: "authUrl", extract: jsonField("authUrl")},
	{name: "url", extract: jsonField("url")},
	{name: "oauthUrl", extract: jsonField("oauthUrl")},
}

func jsonField(field string) func(*http.Response, []byte) string {
	return func(_ *http.Response, body []byte) string {
		var fields map[string]any
		if json.Unmarshal(body, &fields) != nil {
			return ""
		}
		s, _ := fields[field].(string)
		return s
	}
}

// ConnectURL asks upstream for the OAuth link that connects a platform
// account to a profile.
func (c *Client) ConnectURL(ctx context.Context, platform, profileID, redirectURL string) (string, error) {
	if !c.Configured() {
		return "", apperr.NotConfigured(provider)
	}
	if platform == "" || profileID == "" {
		return "", apperr.Validation("platform and profileId are required")
	}

	query := url.Values{}
	query.Set("profileId", profileID)
	if redirectURL != "" {
		query.Set("redirect_url", redirectURL)
	}

	resp, err := c.send(ctx, c.noRedirect, http.MethodGet, "/connect/"+url.PathEscape(platform), query, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", apperr.Transport(provider, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", c.failure("get connect URL", &Response{Status: resp.StatusCode, Body: body})
	}

	for _, s := range connectStrategies {
		if u := s.extract(resp, body); u != "" {
			c.logger.Debug("resolved OAuth URL", zap.String("platform", platform), zap.String("strategy", s.name))
			return u, nil
		}
	}

	c.logger.Error("no OAuth URL in connect response",
		zap.String("platform", platform),
		zap.Int("status", resp.StatusCode),
		zap.String("details", upstream.ErrorMessage(body)))
	return "", &apperr.Error{
		Kind:    apperr.KindUpstream,
		Status:  http.StatusInternalServerError,
		Message: "Failed to get OAuth URL",
		Err:     fmt.Errorf("connect %s: no OAuth URL in %d response", platform, resp.StatusCode),
	}
}
