package domain

import "time"

// Category is the closed set of community post categories shown in the app.
// The remote store transports categories in a slug form (see Slug), which
// must round-trip exactly for every value here.
type Category string

const (
	CategoryUpdate   Category = "Update"
	CategoryQuestion Category = "Question"
	CategoryCareTips Category = "Care & Tips"
	CategoryHealth   Category = "Health"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryUpdate,
	CategoryQuestion,
	CategoryCareTips,
	CategoryHealth,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Post is the canonical feed entity held by the store. LikedByMe is
// client-local state: the remote store does not report per-user like
// status, so it resets to false on every refresh.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	LikedByMe bool      `json:"liked_by_me"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single reply on a post. Order within Post.Comments follows
// the remote store's declared order.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest is the payload for creating a community post.
type CreatePostRequest struct {
	Content  string   `json:"content"`
	Category Category `json:"category"`
}

// AddCommentRequest is the payload for commenting on a post.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// FeedViewRequest updates the stored feed view parameters. Nil fields are
// left unchanged. Search goes through the debounce window before it takes
// effect.
type FeedViewRequest struct {
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"`
	Sort     *string `json:"sort,omitempty"`
}

// AugmentRequest is the payload for post summarization and enhancement.
type AugmentRequest struct {
	Content  string   `json:"content"`
	Category Category `json:"category,omitempty"`
}

// Enhancement is the result of an AI post rewrite.
type Enhancement struct {
	Title        string `json:"title"`
	ImprovedPost string `json:"improved_post"`
}
