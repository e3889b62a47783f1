package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/feed"
	"github.com/pawconnect/pawsyncd/internal/gateway"
	"github.com/pawconnect/pawsyncd/internal/handler"
	"github.com/pawconnect/pawsyncd/internal/identity"
	"github.com/pawconnect/pawsyncd/internal/routes"
	"github.com/pawconnect/pawsyncd/internal/service"
	"github.com/pawconnect/pawsyncd/pkg/cache"
)

type fakeAugment struct{}

func (fakeAugment) SummarizeReplies(ctx context.Context, postID string) (string, error) {
	return "summary", nil
}
func (fakeAugment) SummarizePost(ctx context.Context, content string, category domain.Category) string {
	return "summary"
}
func (fakeAugment) EnhancePost(ctx context.Context, content string, category domain.Category) domain.Enhancement {
	return domain.Enhancement{Title: "t", ImprovedPost: content}
}

// newRouter wires the handlers against a store with fixed contents and a
// gateway that never gets called.
func newRouter(t *testing.T, posts []domain.Post) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := feed.NewStore()
	require.True(t, store.Replace(posts, 1))

	gw := gateway.NewClient("http://127.0.0.1:0", identity.Static("luna"), time.Second, zerolog.Nop())
	svc := service.NewFeedService(gw, store, cache.NewService(nil), identity.Static("luna"), zerolog.Nop())

	router := gin.New()
	routes.Setup(router, handler.NewFeedHandler(svc, feed.NewView(time.Millisecond)), handler.NewAugmentHandler(fakeAugment{}))
	return router
}

func TestGetFeed_AppliesQueryParams(t *testing.T) {
	router := newRouter(t, []domain.Post{
		{ID: "A", Author: "luna", Content: "Milo update", Category: domain.CategoryUpdate, Likes: 3,
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "B", Author: "max", Content: "Vet tips", Category: domain.CategoryHealth, Likes: 5,
			CreatedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?category=Health&sort=most-liked", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.Post `json:"data"`
		Meta struct {
			Category string `json:"category"`
			Sort     string `json:"sort"`
			Total    int    `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "B", resp.Data[0].ID)
	assert.Equal(t, "Health", resp.Meta.Category)
	assert.Equal(t, 1, resp.Meta.Total)
}

func TestGetFeed_UnknownSortRejected(t *testing.T) {
	router := newRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/feed?sort=trending", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_EmptyContent_Unprocessable(t *testing.T) {
	router := newRouter(t, nil)

	body := strings.NewReader(`{"content":"","category":"Update"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSummarizeReplies_UnknownPost_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	augment := service.NewAugmentService(nil, feed.NewStore(), zerolog.Nop())
	r := gin.New()
	r.POST("/api/v1/posts/:id/summarize-replies", handler.NewAugmentHandler(augment).SummarizeReplies)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/posts/nope/summarize-replies", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateView_DebouncedSearch(t *testing.T) {
	router := newRouter(t, []domain.Post{
		{ID: "A", Author: "luna", Content: "Fluffy news", Category: domain.CategoryUpdate},
	})

	body := strings.NewReader(`{"search":"fluffy"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/feed/view", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The view uses a 1ms debounce in tests; give it time to settle.
	time.Sleep(50 * time.Millisecond)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.Post `json:"data"`
		Meta struct {
			Search string `json:"search"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fluffy", resp.Meta.Search)
	require.Len(t, resp.Data, 1)
}
