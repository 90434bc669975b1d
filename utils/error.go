package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers from panics in later handlers and answers with a 500 in the
// same shape the handlers use for their own errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("requestId", c.GetString("requestID")),
					zap.String("path", c.Request.URL.Path),
				)
				JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends {"error", "message"} plus the request id when one is set.
func JSONError(c *gin.Context, status int, errMsg, message string) {
	body := gin.H{"error": errMsg, "message": message}
	if id := c.GetString("requestID"); id != "" {
		body["requestId"] = id
	}
	c.JSON(status, body)
}
