package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/feed"
	"github.com/pawconnect/pawsyncd/internal/gateway"
	"github.com/pawconnect/pawsyncd/internal/service"
	"github.com/pawconnect/pawsyncd/pkg/ginutil"
)

// FeedHandler handles HTTP requests for the community feed
type FeedHandler struct {
	service service.FeedService
	view    *feed.View
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(svc service.FeedService, view *feed.View) *FeedHandler {
	return &FeedHandler{service: svc, view: view}
}

// GetFeed returns the filtered, searched, and sorted view of the feed.
// Explicit query params override the stored view for this one request;
// a q param bypasses the debounce since the client already settled on it.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	category, search, mode := h.view.Params()

	category = ginutil.QueryString(c, "category", category)
	search = ginutil.QueryString(c, "q", search)
	if v, ok := c.GetQuery("sort"); ok {
		parsed, valid := feed.ParseSortMode(v)
		if !valid {
			common.ErrorResponse(c, 400, common.ErrInvalidSort.Error())
			return
		}
		mode = parsed
	}

	posts := feed.Query(h.service.Posts(), category, search, mode)

	common.SuccessResponse(c, posts, &common.Meta{
		Category: category,
		Search:   search,
		Sort:     string(mode),
		Total:    len(posts),
	})
}

// UpdateView updates the stored feed view parameters. Search text goes
// through the debounce window before taking effect.
func (h *FeedHandler) UpdateView(c *gin.Context) {
	var req domain.FeedViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	if req.Sort != nil {
		mode, ok := feed.ParseSortMode(*req.Sort)
		if !ok {
			common.ErrorResponse(c, 400, common.ErrInvalidSort.Error())
			return
		}
		h.view.SetSort(mode)
	}
	if req.Category != nil {
		h.view.SetCategory(*req.Category)
	}
	if req.Search != nil {
		h.view.SetSearch(*req.Search)
	}

	c.Status(204)
}

// Refresh forces a full refresh cycle against the remote store.
func (h *FeedHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		respondServiceError(c, err, "Failed to load community feed")
		return
	}
	common.SuccessResponse(c, gin.H{"posts": h.service.Posts()}, nil)
}

// CreatePost publishes a new community post. On failure the client keeps
// its compose state and may retry manually.
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	if err := h.service.CreatePost(c.Request.Context(), req.Content, req.Category); err != nil {
		respondServiceError(c, err, "Failed to share update")
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Update shared with community!"}, nil)
}

// LikePost toggles the caller's like on a post.
func (h *FeedHandler) LikePost(c *gin.Context) {
	postID := c.Param("id")

	if err := h.service.LikePost(c.Request.Context(), postID); err != nil {
		respondServiceError(c, err, "Failed to like post")
		return
	}

	common.SuccessResponse(c, gin.H{"post_id": postID}, nil)
}

// AddComment appends a comment to a post. The client clears and closes its
// comment composer only on success.
func (h *FeedHandler) AddComment(c *gin.Context) {
	postID := c.Param("id")

	var req domain.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	if err := h.service.AddComment(c.Request.Context(), postID, req.Content); err != nil {
		respondServiceError(c, err, "Failed to add comment")
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Comment added!"}, nil)
}

// respondServiceError maps the error taxonomy onto HTTP statuses:
// precondition failures are client errors, transport failures are upstream
// errors.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrNoIdentity):
		common.ErrorResponse(c, 401, "Please set your username in settings first.")
	case errors.Is(err, common.ErrEmptyContent):
		common.ErrorResponse(c, 422, common.ErrEmptyContent.Error())
	case errors.Is(err, common.ErrInvalidCategory):
		common.ErrorResponse(c, 422, common.ErrInvalidCategory.Error())
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, 404, common.ErrPostNotFound.Error())
	default:
		var te *gateway.TransportError
		if errors.As(err, &te) {
			common.ErrorResponse(c, 502, fallback+". Please check your network and try again.")
			return
		}
		common.ErrorResponse(c, 500, fallback)
	}
}
