package ginutil

import (
	"github.com/gin-gonic/gin"
)

// QueryString extracts a string query parameter with default value
func QueryString(c *gin.Context, key, defaultValue string) string {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return defaultValue
}
