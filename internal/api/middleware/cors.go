package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS wraps rs/cors for gin. Allowed origins come from CORS_ORIGINS
// (comma-separated); everything is allowed when unset, which suits local
// development against the SPA dev server.
func CORS() gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				opts.AllowedOrigins = append(opts.AllowedOrigins, o)
			}
		}
	} else {
		opts.AllowedOrigins = []string{"*"}
	}
	h := cors.New(opts)
	return func(c *gin.Context) {
		h.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
