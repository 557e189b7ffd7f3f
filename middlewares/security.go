package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		// PDFs and charts are opened inline by the staff UI
		if !strings.HasSuffix(c.Request.URL.Path, ".png") && !strings.HasSuffix(c.Request.URL.Path, "/pdf") && !strings.HasSuffix(c.Request.URL.Path, "/receipt") {
			c.Header("Content-Security-Policy", "default-src 'self'")
		}

		c.Next()
	}
}
