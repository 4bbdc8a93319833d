package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/api"
	"github.com/Conceptual-Machines/counterpoint-api/internal/config"
	"github.com/Conceptual-Machines/counterpoint-api/internal/database"
	"github.com/Conceptual-Machines/counterpoint-api/internal/metrics"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/Conceptual-Machines/counterpoint-api/pkg/embedded"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	if cfg.IsJWTMode() && cfg.JWTSecret == "" {
		log.Fatal("AUTH_MODE=jwt requires JWT_SECRET")
	}

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "counterpoint-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,                                      // 100% sampling for now, adjust based on volume
			EnableLogs:       true,                                     // Enable Sentry Logs feature
			Debug:            cfg.Environment != environmentProduction, // Enable debug in non-prod
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}

	if cfg.SeedCatalog {
		if err := seedCatalog(context.Background(), db); err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to seed cantus firmus catalog:", err)
		}
	}

	cloudwatch, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		log.Printf("CloudWatch metrics unavailable: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(db, cfg, GetVersion(), cloudwatch)

	log.Printf("🚀 Starting server on port %s (auth mode: %s)", cfg.Port, cfg.AuthMode)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// seedCatalog loads the embedded cantus firmi into an empty table
func seedCatalog(ctx context.Context, db *gorm.DB) error {
	start := time.Now()
	entries, err := services.LoadCatalog(embedded.CantusFirmiYAML)
	if err != nil {
		return err
	}
	inserted, err := services.NewCantusService(db).Seed(ctx, entries)
	if err != nil {
		return err
	}
	metrics.NewSentryMetrics().RecordCatalogSeed(inserted, time.Since(start))
	return nil
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
