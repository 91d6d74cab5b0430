package middleware

import (
	"github.com/ErlanBelekov/estate-listings/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID keeps a well-formed incoming X-Request-ID and replaces anything
// else with a fresh UUID, then echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if !requestid.Valid(id) {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
