package api

import (
	"github.com/Conceptual-Machines/counterpoint-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/counterpoint-api/internal/api/middleware"
	"github.com/Conceptual-Machines/counterpoint-api/internal/config"
	"github.com/Conceptual-Machines/counterpoint-api/internal/metrics"
	"github.com/Conceptual-Machines/counterpoint-api/internal/middleware"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, version string, cw *metrics.Client) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	cantusService := services.NewCantusService(db)
	validationService := services.NewValidationService(db, cantusService, cw)

	auth := authMiddleware(cfg)
	cantusHandler := handlers.NewCantusHandler(cantusService)

	v1 := router.Group("/api/v1")
	{
		validationHandler := handlers.NewValidationHandler(validationService)
		v1.POST("/validate", auth, apimiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst), validationHandler.Validate)
		v1.GET("/validations/stats", auth, validationHandler.Stats)

		// Catalog reads are public
		optional := optionalAuthMiddleware(cfg)
		v1.GET("/cantus", optional, cantusHandler.List)
		v1.GET("/cantus/:slug", optional, cantusHandler.Show)
	}

	// Catalog administration
	admin := router.Group("/api/admin")
	admin.Use(auth, middleware.AdminRequired())
	{
		admin.POST("/cantus", cantusHandler.Create)
		admin.DELETE("/cantus/:slug", cantusHandler.Delete)
	}

	return router
}

// authMiddleware picks the authentication strategy for AUTH_MODE
func authMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsJWTMode():
		return middleware.JWTAuth(cfg)
	case cfg.IsGatewayMode():
		return apimiddleware.GatewayAuth()
	default:
		return apimiddleware.NoAuth()
	}
}

// optionalAuthMiddleware identifies the caller when credentials are present
// and lets anonymous requests through otherwise
func optionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsJWTMode():
		return middleware.OptionalJWTAuth(cfg)
	case cfg.IsGatewayMode():
		return apimiddleware.OptionalGatewayAuth()
	default:
		return apimiddleware.NoAuth()
	}
}
