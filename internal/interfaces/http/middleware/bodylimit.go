package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menudash/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused up front with 413; chunked bodies are cut off by
// http.MaxBytesReader and fail when the handler binds them.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength <= maxBytes {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
			c.Next()
			return
		}
		resp := dto.NewErrorResponseWithRequestID(dto.CodeTooLarge, "Request body exceeds maximum allowed size", getRequestID(c))
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp)
	}
}
