package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"mortgauge/internal/config"
	"mortgauge/internal/database"
	"mortgauge/internal/database/migration"
	handlers "mortgauge/internal/http/handler"
	"mortgauge/internal/http/middleware"
	"mortgauge/internal/notify"
	"mortgauge/internal/otel"
	"mortgauge/internal/repository/postgres"
	"mortgauge/internal/scope"
	"mortgauge/internal/service"
	"mortgauge/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Tracing is configured entirely through OTEL_* environment variables and
	// degrades to a noop provider when the exporter cannot be reached.
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(context.Background(), db, logger); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Notification sink. Falls back to a noop when Redis is disabled or not
	// configured so the API keeps working without it.
	var notifier notify.Notifier = notify.Noop{}
	if cfg.Redis.Enabled && cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		notifier = notify.NewRedis(rdb, logger)
	}
	defer notifier.Close()

	scoper := scope.New(cfg.Auth.RequireOwnership)

	// Initialize repositories and services
	clientRepo := postgres.NewClientPostgres(db)
	appRepo := postgres.NewApplicationPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	taskRepo := postgres.NewTaskPostgres(db)
	reminderRepo := postgres.NewReminderPostgres(db)
	scriptRepo := postgres.NewScriptPostgres(db)
	sectionRepo := postgres.NewSectionPostgres(db)
	dashboardRepo := postgres.NewDashboardPostgres(db)

	h := handlers.Handlers{
		DB:           db,
		HTTP:         cfg.HTTP,
		Clients:      service.NewClientService(clientRepo, docRepo, objStore, scoper, logger),
		Applications: service.NewApplicationService(appRepo, clientRepo, scoper, notifier),
		Documents:    service.NewDocumentService(objStore, docRepo, clientRepo, appRepo, scoper),
		Tasks:        service.NewTaskService(taskRepo, clientRepo, appRepo, scoper, notifier),
		Reminders:    service.NewReminderService(reminderRepo, clientRepo, appRepo, scoper, notifier),
		Scripts:      service.NewScriptService(scriptRepo, sectionRepo, scoper),
		Dashboard:    service.NewDashboardService(dashboardRepo, scoper, logger),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Principal())
	app.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, h)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
