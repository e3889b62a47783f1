package feed

import (
	"sort"
	"strings"

	"github.com/pawconnect/pawsyncd/internal/domain"
)

// SortMode selects one of the four total orderings of the feed.
type SortMode string

const (
	SortNewest        SortMode = "newest"
	SortOldest        SortMode = "oldest"
	SortMostCommented SortMode = "most-commented"
	SortMostLiked     SortMode = "most-liked"
)

// CategoryAll disables the category filter.
const CategoryAll = "ALL"

// ParseSortMode maps a string to a SortMode, defaulting to newest for empty
// input. Unknown values report false.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case "":
		return SortNewest, true
	case SortNewest, SortOldest, SortMostCommented, SortMostLiked:
		return SortMode(s), true
	}
	return "", false
}

// Query derives the displayed sequence of posts. It is a pure function of
// its inputs and never mutates them. Order of operations is fixed:
// category filter, then search, then sort. Ties keep their prior order.
func Query(posts []domain.Post, category string, search string, mode SortMode) []domain.Post {
	out := make([]domain.Post, len(posts))
	copy(out, posts)

	if category != "" && category != CategoryAll {
		filtered := out[:0]
		for _, p := range out {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := out[:0]
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Content), needle) ||
				strings.Contains(strings.ToLower(p.Author), needle) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	switch mode {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortMostCommented:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Comments) > len(out[j].Comments)
		})
	case SortMostLiked:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes > out[j].Likes
		})
	}

	return out
}
