package handlers

import (
	"github.com/SscSPs/miguelacho_api/cmd/docs"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. convertMiddleware runs in
// front of /convertir only.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	convertMiddleware ...gin.HandlerFunc,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := r.Group("/", middleware.JSONContentType())
	api.GET("", getHome)
	registerConversionRoutes(api, services.Conversion, m, convertMiddleware...)
	registerTableRoutes(api, services.Tables)

	setupAdminRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAdminRoutes mounts /admin behind JWT auth. Without a secret there is no admin surface.
func setupAdminRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	if cfg.AdminJWTSecret == "" {
		return
	}
	admin := r.Group("/admin", middleware.JSONContentType(), middleware.AuthMiddleware(cfg.AdminJWTSecret))
	registerAdminRoutes(admin, services.Tables)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
