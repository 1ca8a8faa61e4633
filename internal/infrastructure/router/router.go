package router

import (
	"context"
	"net/http"

	"workshop-service/internal/interface/api"
	"workshop-service/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the HTTP surface
type Options struct {
	APIKey      string
	CORSOrigins []string

	// Gatherer backs /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
}

// HealthCheck reports whether the store answers
type HealthCheck func(ctx context.Context) error

// NewRouter builds the gin engine with /healthz, /metrics and the /v1 group
func NewRouter(opts Options, h *api.WorkshopHandler, health HealthCheck, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", apiKeyHeader, requestIDHeader},
	}))

	r.NoRoute(func(c *gin.Context) {
		api.AbortWithError(c, http.StatusNotFound, api.CodeNotFound, "Endpoint not found")
	})

	r.GET("/healthz", func(c *gin.Context) {
		if err := health(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "db": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "db": "up"})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	if opts.APIKey != "" {
		v1.Use(APIKeyAuth(opts.APIKey))
	} else {
		log.Warn("API_KEY is empty, /v1 is not authenticated")
	}
	{
		v1.GET("/ping", h.Ping)
		v1.POST("/wsop", h.UpdateOperation)
		v1.POST("/wsop/go", h.Go)
		v1.GET("/wsop/:driveId", h.GetJobCard)
		v1.GET("/wsop/:driveId/:operation", h.GetOperation)
	}
	return r
}
