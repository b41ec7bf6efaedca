package handlers

import (
	"fmt"

	"github.com/SscSPs/blood_desk_app/cmd/docs"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/SscSPs/blood_desk_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	registerHealthRoutes(r, services.Health)

	// Register public authentication routes
	if err := registerAuthRoutes(r, cfg, services.Auth); err != nil {
		return err
	}

	// Setup API routes with Auth Middleware, passing service interfaces
	setupAPIRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerSessionRoutes(api, service.Auth)
	registerDonorRoutes(api, service.Donor)
	registerStockRoutes(api, service.Stock)
	registerAnalyticsRoutes(api, service.Analytics)
	registerExportRoutes(api, service.Export)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
