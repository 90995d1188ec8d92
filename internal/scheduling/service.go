package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/upstream"
)

// ValidatePost requires a non-empty content string and a non-empty
// platforms array.
func ValidatePost(body map[string]any) error {
	content, _ := body["content"].(string)
	if strings.TrimSpace(content) == "" {
		return apperr.Validation("content is required")
	}
	platforms, _ := body["platforms"].([]any)
	if len(platforms) == 0 {
		return apperr.Validation("at least one platform is required")
	}
	return nil
}

func (c *Client) ListProfiles(ctx context.Context) (*Response, error) {
	return c.relay(ctx, "list profiles", http.MethodGet, "/profiles", nil, nil)
}

func (c *Client) CreateProfile(ctx context.Context, body map[string]any) (*Response, error) {
	resp, err := c.relay(ctx, "create profile", http.MethodPost, "/profiles", nil, body)
	if err != nil {
		return nil, err
	}
	resp.Status = http.StatusCreated
	return resp, nil
}

// ListAccounts relays every caller query parameter, profileId included.
func (c *Client) ListAccounts(ctx context.Context, query url.Values) (*Response, error) {
	return c.relay(ctx, "list accounts", http.MethodGet, "/accounts", query, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, accountID string) (*Response, error) {
	if !c.Configured() {
		return nil, apperr.NotConfigured(provider)
	}
	if accountID == "" {
		return nil, apperr.Validation("accountId is required")
	}
	return c.relay(ctx, "delete account", http.MethodDelete, "/accounts/"+url.PathEscape(accountID), nil, nil)
}

func (c *Client) ListPosts(ctx context.Context, query url.Values) (*Response, error) {
	return c.relay(ctx, "list posts", http.MethodGet, "/posts", query, nil)
}

// CreatePost answers 201 on success. A 402 from upstream means the plan's
// post quota is used up and keeps its status.
func (c *Client) CreatePost(ctx context.Context, body map[string]any) (*Response, error) {
	if !c.Configured() {
		return nil, apperr.NotConfigured(provider)
	}
	if err := ValidatePost(body); err != nil {
		return nil, err
	}

	resp, err := c.Forward(ctx, http.MethodPost, "/posts", nil, body)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusPaymentRequired {
		c.logger.Warn("scheduling plan limit reached")
		return nil, apperr.PlanLimit(upstream.ErrorMessage(resp.Body))
	}
	if !resp.OK() {
		return nil, c.failure("create post", resp)
	}
	if resp.Body == nil {
		resp.Body = json.RawMessage(`{}`)
	}
	resp.Status = http.StatusCreated
	return resp, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID string, body map[string]any) (*Response, error) {
	if !c.Configured() {
		return nil, apperr.NotConfigured(provider)
	}
	if postID == "" {
		return nil, apperr.Validation("postId is required")
	}
	if err := ValidatePost(body); err != nil {
		return nil, err
	}
	return c.relay(ctx, "update post", http.MethodPut, "/posts/"+url.PathEscape(postID), nil, body)
}

func (c *Client) DeletePost(ctx context.Context, postID string) (*Response, error) {
	if !c.Configured() {
		return nil, apperr.NotConfigured(provider)
	}
	if postID == "" {
		return nil, apperr.Validation("postId is required")
	}
	return c.relay(ctx, "delete post", http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil)
}

func (c *Client) relay(ctx context.Context, op, method, path string, query url.Values, body any) (*Response, error) {
	resp, err := c.Forward(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, c.failure(op, resp)
	}
	if resp.Body == nil {
		resp.Body = json.RawMessage(`{}`)
	}
	return resp, nil
}
