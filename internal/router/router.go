package router

import (
	"github.com/gin-gonic/gin"

	"billscan/internal/config"
	"billscan/internal/handler"
	"billscan/internal/middleware"
)

// Handlers groups the handlers wired into the router.
type Handlers struct {
	Extract *handler.ExtractHandler
	Export  *handler.ExportHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with middleware and routes.
func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")
	if cfg.Auth.Secret != "" {
		v1.Use(middleware.Auth(cfg.Auth))
	}
	{
		v1.POST("/extract", h.Extract.Extract)
		v1.POST("/extract/batch", h.Extract.ExtractBatch)
		v1.POST("/export", h.Export.Export)
	}

	return r
}
