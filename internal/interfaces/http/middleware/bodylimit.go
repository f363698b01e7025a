package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/society/backend/internal/interfaces/http/dto"
)

// BodyLimitConfig configures BodyLimitWithConfig
type BodyLimitConfig struct {
	MaxBytes int64
	// Reject writes the 413 response. Defaults to the API error envelope.
	Reject func(c *gin.Context)
}

// BodyLimit caps request bodies at maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitWithConfig(BodyLimitConfig{MaxBytes: maxBytes})
}

// BodyLimitWithConfig rejects bodies that declare more than MaxBytes up front
// and wraps the rest so reads fail once the limit is crossed.
func BodyLimitWithConfig(cfg BodyLimitConfig) gin.HandlerFunc {
	reject := cfg.Reject
	if reject == nil {
		reject = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
		}
	}

	return func(c *gin.Context) {
		if cfg.MaxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > cfg.MaxBytes {
			reject(c)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxBytes)
		c.Next()
	}
}
