package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/types"
)

// RequestIDMiddleware attaches a request ID to the context, honouring one
// supplied by the caller so IDs survive proxies and retries.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}

		ctx := types.SetRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
