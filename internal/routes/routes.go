package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pawconnect/pawsyncd/internal/handler"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	feedHandler *handler.FeedHandler,
	augmentHandler *handler.AugmentHandler,
) {
	api := router.Group("/api/v1")

	// Feed view and sync
	feedGroup := api.Group("/feed")
	{
		feedGroup.GET("", feedHandler.GetFeed)
		feedGroup.PATCH("/view", feedHandler.UpdateView)
		feedGroup.POST("/refresh", feedHandler.Refresh)
	}

	// Mutations
	posts := api.Group("/posts")
	{
		posts.POST("", feedHandler.CreatePost)
		posts.POST("/:id/like", feedHandler.LikePost)
		posts.POST("/:id/comments", feedHandler.AddComment)

		// AI augmentation over stored posts
		posts.POST("/:id/summarize-replies", augmentHandler.SummarizeReplies)
	}

	// AI augmentation over arbitrary content (compose-time helpers)
	aiGroup := api.Group("/ai")
	{
		aiGroup.POST("/summarize", augmentHandler.SummarizePost)
		aiGroup.POST("/enhance", augmentHandler.EnhancePost)
	}
}
