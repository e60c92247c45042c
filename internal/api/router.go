package api

import (
	"dating-admin/internal/auth"
	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

// RouterConfig porte ce dont le routeur a besoin en plus des services
type RouterConfig struct {
	Validator      *validation.APIValidator
	Tokens         *auth.TokenManager
	AllowedOrigins []string
	Production     bool
}

func SetupRouter(services Services, cfg RouterConfig) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		RequestIDMiddleware(),
		AccessLogMiddleware(),
		RecoveryMiddleware(),
		CORSMiddleware(cfg.AllowedOrigins),
		SecurityHeadersMiddleware(cfg.Production),
		metrics.Middleware(),
		ValidationMiddleware(cfg.Validator),
	)

	handlers := NewHandlers(services)

	r.GET("/health", handlers.Health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.POST("/auth/login", validation.ValidateRequest(validation.ParseJSONRequest[models.LoginRequest]()), handlers.Login)

	protected := api.Group("", auth.RequireToken(cfg.Tokens))
	{
		protected.GET("/dashboard/stats", handlers.DashboardStats)
		handlers.userRoutes(protected.Group("/users"))
		handlers.blindateRoutes(protected.Group("/blindates"))
		handlers.matchRoutes(protected.Group("/matches"))
		handlers.reportRoutes(protected.Group("/reports"))
		handlers.safetyReportRoutes(protected.Group("/safety-reports"))
		handlers.notificationRoutes(protected.Group("/notifications"))
	}

	return r
}
