package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/roomledger/roomledger/internal/errors"
)

// ErrorHandler converts errors attached to the gin context into the standard
// JSON error envelope. Handlers call c.Error(err) and return; this middleware
// does the rest.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// The last error wins when a handler attached more than one
		err := c.Errors.Last().Err
		status, body := ierr.NewErrorResponse(err)
		c.AbortWithStatusJSON(status, body)
	}
}
