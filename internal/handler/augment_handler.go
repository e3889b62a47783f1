package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/service"
)

// AugmentHandler handles AI augmentation requests. These are best-effort:
// generation failures come back as 200s with fallback text, never as errors.
type AugmentHandler struct {
	service service.AugmentService
}

// NewAugmentHandler creates a new AugmentHandler
func NewAugmentHandler(svc service.AugmentService) *AugmentHandler {
	return &AugmentHandler{service: svc}
}

// SummarizeReplies summarizes all comments of one post.
func (h *AugmentHandler) SummarizeReplies(c *gin.Context) {
	postID := c.Param("id")

	summary, err := h.service.SummarizeReplies(c.Request.Context(), postID)
	if errors.Is(err, common.ErrPostNotFound) {
		common.ErrorResponse(c, 404, common.ErrPostNotFound.Error())
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to generate summary")
		return
	}

	common.SuccessResponse(c, gin.H{"summary": summary}, nil)
}

// SummarizePost summarizes arbitrary post content.
func (h *AugmentHandler) SummarizePost(c *gin.Context) {
	var req domain.AugmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	summary := h.service.SummarizePost(c.Request.Context(), req.Content, req.Category)
	common.SuccessResponse(c, gin.H{"summary": summary}, nil)
}

// EnhancePost rewrites post content and suggests a title.
func (h *AugmentHandler) EnhancePost(c *gin.Context) {
	var req domain.AugmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	enhancement := h.service.EnhancePost(c.Request.Context(), req.Content, req.Category)
	common.SuccessResponse(c, enhancement, nil)
}
