package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

// DocumentLoggerMiddleware logs generation of a rendered document (receipt, report, chart).
func DocumentLoggerMiddleware(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating %s %s", kind, c.Request.URL.String())

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("%s generated (%d bytes)", kind, c.Writer.Size())
		} else {
			utils.ErrorLogger.Printf("Failed to generate %s, status %d", kind, c.Writer.Status())
		}
	}
}
