package handlers

import (
	"fmt"

	"github.com/SscSPs/todo_api/cmd/docs"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/SscSPs/todo_api/internal/platform/config"
	"github.com/SscSPs/todo_api/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	registry *prometheus.Registry,
) error {
	r.GET("/health", healthCheck)
	if registry != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))
	}

	var loginLimit gin.HandlerFunc
	if cfg.LoginRateLimit != "" {
		lim, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
		if err != nil {
			return fmt.Errorf("login rate limit: %w", err)
		}
		loginLimit = middleware.RateLimit(lim)
	}

	// Public authentication routes, with /auth/me and /auth/change-password behind the bearer check
	registerAuthRoutes(r, services.Auth, services.Token, loginLimit)

	// Every todo route requires a valid access token
	protected := r.Group("", middleware.AuthMiddleware(services.Token))
	registerTodoRoutes(protected, services.Todo)

	setupSwaggerRoutes(r, cfg)
	return nil
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
