package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"annotapi/internal/config"
	"annotapi/internal/database"
	"annotapi/internal/database/migration"
	handlers "annotapi/internal/http/handler"
	"annotapi/internal/http/middleware"
	"annotapi/internal/otel"
	"annotapi/internal/realtime"
	"annotapi/internal/repository/postgres"
	"annotapi/internal/service"
	"annotapi/internal/storage"
)

func main() {
	ctx := context.Background()
	loc := time.UTC

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage archives the originally uploaded files.
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	annoRepo := postgres.NewAnnotationPostgres(db)

	// One room per document; annotation mutations publish refresh events here.
	hub := realtime.NewHub()

	userSvc := service.NewUserService(userRepo)
	docSvc := service.NewDocumentService(objStore, docRepo, cfg.Upload.TempDir)
	annoSvc := service.NewAnnotationService(annoRepo, userRepo, hub)

	promReg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(promReg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Upload.MaxSizeBytes),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, userSvc, docSvc, annoSvc, hub, promReg)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
