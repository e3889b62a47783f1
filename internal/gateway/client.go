package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/identity"
)

// Client implements FeedGateway over the remote backend's single-endpoint
// JSON protocol. No retries: transient failures surface to the caller, which
// decides whether to retry manually.
type Client struct {
	endpoint string
	id       identity.Provider
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a gateway client for the given endpoint.
func NewClient(endpoint string, id identity.Provider, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		id:       id,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// FetchAll retrieves every post from the remote store.
func (c *Client) FetchAll(ctx context.Context) ([]RawPost, error) {
	body, err := c.do(ctx, actionGetPosts, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Posts []RawPost `json:"posts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Action: actionGetPosts, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.Posts, nil
}

// CreatePost publishes a new post. The category travels in its wire slug form.
func (c *Client) CreatePost(ctx context.Context, content string, category domain.Category) error {
	_, err := c.do(ctx, actionCreatePost, map[string]any{
		"post_text": content,
		"type":      category.Slug(),
	})
	return err
}

// LikePost toggles the caller's like on a post.
func (c *Client) LikePost(ctx context.Context, postID string) error {
	_, err := c.do(ctx, actionLikePost, map[string]any{
		"post_id": postID,
	})
	return err
}

// AddComment appends a comment to a post.
func (c *Client) AddComment(ctx context.Context, postID, text string) error {
	_, err := c.do(ctx, actionAddComment, map[string]any{
		"post_id":      postID,
		"comment_text": text,
	})
	return err
}

// do serializes the action envelope, posts it, and returns the response body.
// The identity guard runs before any network I/O: a missing display name is a
// precondition failure, not a transport one.
func (c *Client) do(ctx context.Context, action string, fields map[string]any) ([]byte, error) {
	username := c.id.Username()
	if username == "" {
		return nil, common.ErrNoIdentity
	}

	envelope := map[string]any{
		"action":   action,
		"username": username,
	}
	for k, v := range fields {
		envelope[k] = v
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("action", action).Err(err).Msg("remote feed request failed")
		return nil, &TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Action: action, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Str("action", action).
			Int("status", resp.StatusCode).
			Msg("remote feed returned non-success status")
		return nil, &TransportError{
			Action: action,
			Status: resp.StatusCode,
			Err:    errors.New(string(body)),
		}
	}

	c.log.Debug().
		Str("action", action).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("remote feed request")

	return body, nil
}
