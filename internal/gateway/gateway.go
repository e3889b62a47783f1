// Package gateway talks to the remote community backend. It is the only
// package that performs network I/O against the feed store.
package gateway

import (
	"context"
	"fmt"

	"github.com/pawconnect/pawsyncd/internal/domain"
)

// Remote backend action names. The backend multiplexes every operation over
// a single POST endpoint using an action discriminator.
const (
	actionCreatePost = "create_post"
	actionGetPosts   = "get_posts"
	actionLikePost   = "like_post"
	actionAddComment = "add_comment"
)

// FeedGateway is the outbound contract for the remote community store.
// Like is a remote-side toggle: the gateway neither knows nor tracks the
// resulting state.
type FeedGateway interface {
	FetchAll(ctx context.Context) ([]RawPost, error)
	CreatePost(ctx context.Context, content string, category domain.Category) error
	LikePost(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, text string) error
}

// RawPost is the remote record shape before normalization.
type RawPost struct {
	ID        string       `json:"id"`
	Author    string       `json:"author"`
	Type      string       `json:"type"`
	Content   string       `json:"content"`
	Likes     int          `json:"likes"`
	Comments  []RawComment `json:"comments"`
	CreatedAt string       `json:"createdAt"`
}

// RawComment is the remote comment shape. CreatedAt may be absent.
type RawComment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// TransportError is the single failure kind for anything that went wrong on
// the wire: non-2xx status, network error, or an undecodable fetch body.
type TransportError struct {
	Action string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote feed %s failed (HTTP %d): %v", e.Action, e.Status, e.Err)
	}
	return fmt.Sprintf("remote feed %s failed: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
