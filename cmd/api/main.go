package main

// @title RHI Dashboard API
// @version 1.0
// @description Relationship health intelligence for real-estate sales leads.

// @host localhost:8080
// @BasePath /api/v1

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rhicrm/rhi-backend/config"
	"github.com/rhicrm/rhi-backend/pkg/agents"
	"github.com/rhicrm/rhi-backend/pkg/api/handlers"
	"github.com/rhicrm/rhi-backend/pkg/cache"
	"github.com/rhicrm/rhi-backend/pkg/checklist"
	"github.com/rhicrm/rhi-backend/pkg/clients"
	"github.com/rhicrm/rhi-backend/pkg/dashboard"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/email"
	"github.com/rhicrm/rhi-backend/pkg/export"
	"github.com/rhicrm/rhi-backend/pkg/interactions"
	"github.com/rhicrm/rhi-backend/pkg/jobs"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	custommiddleware "github.com/rhicrm/rhi-backend/pkg/middleware"
	"github.com/rhicrm/rhi-backend/pkg/notify"
	"github.com/rhicrm/rhi-backend/pkg/store"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize the store
	var st domain.Store
	switch cfg.StoreDriver {
	case "memory":
		st = store.NewMemory()
		log.Printf("✅ In-memory store initialized")
	default:
		gormStore, err := store.NewGorm(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		st = gormStore
	}
	defer st.Close()

	// Initialize Redis cache (optional)
	var appCache domain.Cache
	var redisClient *cache.Client
	if cfg.CacheEnabled {
		var err error
		redisClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, running without cache: %v", err)
		} else {
			defer redisClient.Close()
			appCache = redisClient
		}
	} else {
		log.Printf("ℹ️  Cache disabled (CACHE_ENABLED=false)")
	}

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New(nil)
	log.Printf("✅ Prometheus metrics initialized")

	// Initialize notifier: Slack when configured, otherwise the log
	var notifier domain.Notifier
	if cfg.SlackWebhookURL != "" {
		notifier = notify.NewMulti(notify.NewSlack(cfg.SlackWebhookURL), notify.NewLog(appLogger))
		log.Printf("✅ Slack notifications enabled")
	} else {
		notifier = notify.NewLog(appLogger)
		log.Printf("ℹ️  Slack disabled (no webhook configured), events go to the log")
	}

	// Initialize services
	emailService := email.NewService(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	clientService := clients.NewService(st, appCache, prometheusMetrics, appLogger, cfg.DefaultPhoneRegion)
	agentService := agents.NewService(st, appLogger)
	interactionService := interactions.NewService(st, appCache, notifier, prometheusMetrics, appLogger)
	checklistService := checklist.NewService(st, appCache, appLogger)
	dashboardService := dashboard.NewService(st, appCache, prometheusMetrics, appLogger)
	exportService := export.NewService(st, cfg.ExportDir)

	// Initialize cron manager for the SLA sweep
	cronManager := jobs.NewCronManager(dashboardService, notifier, emailService, cfg.SLAAlertEmail, appLogger)
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	cronManager.Start()
	defer cronManager.Stop()
	log.Printf("✅ Cron jobs started successfully")

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	// Initialize rate limiter
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())

	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "RHI Dashboard API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		status := http.StatusOK
		if err := st.Ping(ctx); err != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "disabled"
		if redisClient != nil {
			cacheStatus = "up"
			if err := redisClient.Redis.Ping(ctx).Err(); err != nil {
				cacheStatus = "down"
				status = http.StatusServiceUnavailable
			}
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}

		return c.JSON(status, map[string]any{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize handlers
	clientHandler := handlers.NewClientHandler(clientService)
	agentHandler := handlers.NewAgentHandler(agentService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, checklistService)
	exportHandler := handlers.NewExportHandler(exportService)
	phoneHandler := handlers.NewPhoneHandler(cfg.DefaultPhoneRegion)

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "pong",
		})
	})

	clientsGroup := v1.Group("/clients")
	{
		clientsGroup.GET("", clientHandler.List)
		clientsGroup.POST("", clientHandler.Create)
		clientsGroup.GET("/:id", clientHandler.Get)
		clientsGroup.PATCH("/:id", clientHandler.Update)
		clientsGroup.DELETE("/:id", clientHandler.Delete)
		clientsGroup.GET("/:id/interactions", interactionHandler.History)
		clientsGroup.POST("/:id/interactions", interactionHandler.Log)
		clientsGroup.GET("/:id/checklist", checklistHandler.List)
		clientsGroup.PUT("/:id/checklist/:item", checklistHandler.Toggle)
	}

	agentsGroup := v1.Group("/agents")
	{
		agentsGroup.GET("", agentHandler.List)
		agentsGroup.POST("", agentHandler.Create)
		agentsGroup.GET("/:id", agentHandler.Get)
		agentsGroup.PATCH("/:id", agentHandler.Update)
		agentsGroup.POST("/:id/toggle", agentHandler.Toggle)
		agentsGroup.DELETE("/:id", agentHandler.Delete)
	}

	dashboardGroup := v1.Group("/dashboard")
	{
		dashboardGroup.GET("/summary", dashboardHandler.Summary)
		dashboardGroup.GET("/red-queue", dashboardHandler.RedQueue)
		dashboardGroup.GET("/coverage", dashboardHandler.Coverage)
	}

	v1.GET("/exports/clients", exportHandler.ExportClients)
	v1.GET("/phone/validate", phoneHandler.Validate)

	// Start server with graceful shutdown
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
		log.Printf("🚀 Server starting on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Printf("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Forced shutdown: %v", err)
	}

	log.Printf("✅ Server stopped")
}
