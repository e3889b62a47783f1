// Package feed holds the canonical in-memory feed: normalization of remote
// records, the replace-only store, and the pure query pipeline over it.
package feed

import (
	"time"

	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/gateway"
)

// Normalize maps raw remote records into canonical posts. It is total: no
// record shape causes an error. Unknown category slugs pass through verbatim,
// comments missing a timestamp get the current time, and LikedByMe always
// starts false because the remote store has no per-caller like state.
func Normalize(raw []gateway.RawPost, now func() time.Time) []domain.Post {
	posts := make([]domain.Post, 0, len(raw))
	for _, r := range raw {
		comments := make([]domain.Comment, 0, len(r.Comments))
		for _, rc := range r.Comments {
			comments = append(comments, domain.Comment{
				ID:        rc.ID,
				Author:    rc.Author,
				Content:   rc.Content,
				CreatedAt: parseTime(rc.CreatedAt, now),
			})
		}
		posts = append(posts, domain.Post{
			ID:        r.ID,
			Author:    r.Author,
			Category:  domain.CategoryFromSlug(r.Type),
			Content:   r.Content,
			Likes:     r.Likes,
			LikedByMe: false,
			Comments:  comments,
			CreatedAt: parsePostTime(r.CreatedAt),
		})
	}
	return posts
}

// parseTime parses an RFC3339 timestamp, falling back to now when the value
// is absent or malformed. This is the comment timestamp policy: the remote
// store sometimes omits comment times entirely.
func parseTime(s string, now func() time.Time) time.Time {
	if s == "" {
		return now()
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return now()
	}
	return t
}

// parsePostTime parses a post timestamp. Malformed values degrade to the
// zero time rather than failing the whole refresh; such posts sort last
// under "newest".
func parsePostTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
