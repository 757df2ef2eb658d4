package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/johnquangdev/smart-insights/internal/adapter/handler"
	"github.com/johnquangdev/smart-insights/internal/adapter/repository"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	"github.com/johnquangdev/smart-insights/internal/infrastructure/database"
	"github.com/johnquangdev/smart-insights/internal/infrastructure/http/server"
	"github.com/johnquangdev/smart-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/smart-insights/internal/usecase/analytics"
	"github.com/johnquangdev/smart-insights/internal/usecase/invoice"
	"github.com/johnquangdev/smart-insights/pkg/config"
	"github.com/johnquangdev/smart-insights/pkg/logger"
)

// @title           Smart Invoice Analytics API
// @version         1.0
// @description     Invoice ingestion from CSV/XLSX, statistics, analytics charts and PDF reports
// @BasePath        /v1

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run returns instead of exiting so deferred teardown always happens
func run() error {
	// Load configuration
	cfg, err := config.Load(config.ServiceDefaults{DBDriver: config.DriverPostgres, DBName: "invoices"})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zlog, err := logger.New(cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	log.Printf("📦 Connecting to %s database...", cfg.Database.Driver)
	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.CloseDB(db)

	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			return errors.New("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run `migrate up --service invoice`")
		}
		if err := database.AutoMigrate(db, database.InvoiceModels...); err != nil {
			return fmt.Errorf("failed to run AutoMigrate: %w", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations")
	}

	var archive repositories.UploadArchive
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		archive = minioClient
		log.Printf("✅ Uploads archived to bucket %s", cfg.Storage.BucketName)
	}

	log.Println("⚙️  Initializing services...")
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceService := invoice.NewService(invoiceRepo, archive, zlog)
	analyticsService := analytics.NewService(invoiceRepo, zlog)

	e := server.New(cfg, zlog)

	log.Println("🛣️  Setting up routes...")
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, analyticsService, zlog)
	handler.NewRouter(cfg, "invoice-api", zlog, invoiceHandler, nil).Setup(e)

	log.Printf("📝 Environment: %s", cfg.Server.Environment)
	if err := server.Run(e, cfg); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
