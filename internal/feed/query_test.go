package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/pawsyncd/internal/domain"
)

var (
	t1 = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
)

// Scenario from the sort contract: A has more comments, B is newer and has
// more likes.
func scenarioPosts() []domain.Post {
	return []domain.Post{
		{ID: "A", Author: "luna", Content: "Fluffy ate well today", Category: domain.CategoryUpdate,
			Likes: 3, Comments: []domain.Comment{{ID: "c1"}}, CreatedAt: t1},
		{ID: "B", Author: "max", Content: "Vet visit tips", Category: domain.CategoryHealth,
			Likes: 5, Comments: nil, CreatedAt: t2},
	}
}

func ids(posts []domain.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestQuery_SortOrders(t *testing.T) {
	posts := scenarioPosts()

	assert.Equal(t, []string{"B", "A"}, ids(Query(posts, CategoryAll, "", SortMostLiked)))
	assert.Equal(t, []string{"B", "A"}, ids(Query(posts, CategoryAll, "", SortNewest)))
	assert.Equal(t, []string{"A", "B"}, ids(Query(posts, CategoryAll, "", SortOldest)))
	assert.Equal(t, []string{"A", "B"}, ids(Query(posts, CategoryAll, "", SortMostCommented)))
}

func TestQuery_PureAndHistoryIndependent(t *testing.T) {
	posts := scenarioPosts()

	first := Query(posts, CategoryAll, "", SortMostLiked)
	// Interleave unrelated queries, then repeat: same inputs, same output.
	Query(posts, string(domain.CategoryHealth), "vet", SortOldest)
	Query(posts, CategoryAll, "fluffy", SortNewest)
	second := Query(posts, CategoryAll, "", SortMostLiked)

	assert.Equal(t, first, second)

	// Inputs are never mutated.
	assert.Equal(t, scenarioPosts(), posts)
}

func TestQuery_CategoryFilter(t *testing.T) {
	posts := scenarioPosts()

	got := Query(posts, string(domain.CategoryHealth), "", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].ID)
}

func TestQuery_CategoryFilterZeroMatches(t *testing.T) {
	posts := []domain.Post{
		{ID: "A", Category: domain.CategoryUpdate, CreatedAt: t1},
	}

	got := Query(posts, string(domain.CategoryHealth), "", SortNewest)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_SearchMatchesContentOrAuthor(t *testing.T) {
	posts := scenarioPosts()

	// Case-insensitive substring on content.
	got := Query(posts, CategoryAll, "FLUFFY", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)

	// And on author.
	got = Query(posts, CategoryAll, "Max", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].ID)
}

func TestQuery_FilterRunsBeforeSearch(t *testing.T) {
	posts := scenarioPosts()

	// "vet" matches post B, but the Update filter removes B first.
	got := Query(posts, string(domain.CategoryUpdate), "vet", SortNewest)
	assert.Empty(t, got)
}

func TestQuery_TiesKeepPriorOrder(t *testing.T) {
	same := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{ID: "x", Likes: 2, CreatedAt: same},
		{ID: "y", Likes: 2, CreatedAt: same},
		{ID: "z", Likes: 2, CreatedAt: same},
	}

	assert.Equal(t, []string{"x", "y", "z"}, ids(Query(posts, CategoryAll, "", SortMostLiked)))
	assert.Equal(t, []string{"x", "y", "z"}, ids(Query(posts, CategoryAll, "", SortNewest)))
}

func TestParseSortMode(t *testing.T) {
	mode, ok := ParseSortMode("")
	assert.True(t, ok)
	assert.Equal(t, SortNewest, mode)

	for _, valid := range []string{"newest", "oldest", "most-commented", "most-liked"} {
		_, ok := ParseSortMode(valid)
		assert.True(t, ok, valid)
	}

	_, ok = ParseSortMode("trending")
	assert.False(t, ok)
}
