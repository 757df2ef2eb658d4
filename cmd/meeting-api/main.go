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
	aiuse "github.com/johnquangdev/smart-insights/internal/usecase/ai"
	"github.com/johnquangdev/smart-insights/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/smart-insights/pkg/ai"
	"github.com/johnquangdev/smart-insights/pkg/config"
	"github.com/johnquangdev/smart-insights/pkg/logger"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Transcript upload, action item / risk / decision extraction, search and analytics
// @BasePath        /v1

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run returns instead of exiting so deferred teardown always happens
func run() error {
	// Load configuration
	cfg, err := config.Load(config.ServiceDefaults{DBDriver: config.DriverSQLite, DBName: "meetings"})
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
			return errors.New("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run `migrate up --service meeting`")
		}
		if err := database.AutoMigrate(db, database.MeetingModels...); err != nil {
			return fmt.Errorf("failed to run AutoMigrate: %w", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations")
	}

	log.Println("🤖 Initializing AI components...")
	generator, err := pkgai.NewGenerator(ctx, &cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize %s client: %w", cfg.LLM.Provider, err)
	}
	if generator == nil {
		log.Println("⚠️  No LLM provider configured; insights use keyword extraction only")
	} else {
		log.Printf("✅ Insights extracted with %s", generator.Name())
	}
	extractor := aiuse.NewExtractor(generator, cfg.LLM.Timeout, zlog)

	var archive repositories.UploadArchive
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		archive = minioClient
		log.Printf("✅ Transcripts archived to bucket %s", cfg.Storage.BucketName)
	}

	log.Println("⚙️  Initializing services...")
	meetingRepo := repository.NewMeetingRepository(db)
	meetingService := meeting.NewService(meetingRepo, extractor, archive, zlog)

	e := server.New(cfg, zlog)

	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(meetingService, zlog)
	handler.NewRouter(cfg, "meeting-api", zlog, nil, meetingHandler).Setup(e)

	log.Printf("📝 Environment: %s", cfg.Server.Environment)
	if err := server.Run(e, cfg); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
