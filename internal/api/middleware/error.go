package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics into the API's error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(string); ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": err,
				},
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "An unexpected error occurred",
				},
			})
		}
		c.Abort()
	})
}
