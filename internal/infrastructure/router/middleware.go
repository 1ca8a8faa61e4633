package router

import (
	"crypto/subtle"
	"net/http"
	"time"

	"workshop-service/internal/interface/api"
	"workshop-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	apiKeyHeader    = "X-Api-Key"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// APIKeyAuth rejects requests whose X-Api-Key header does not match key
func APIKeyAuth(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(apiKeyHeader))
		if len(got) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			api.AbortWithError(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid or missing API key")
			return
		}
		c.Next()
	}
}

// RequestID tags each request with an id, reusing the caller's when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start).String(),
			"requestId", c.GetString(requestIDKey),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}
