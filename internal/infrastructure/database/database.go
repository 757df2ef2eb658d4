package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/glebarez/sqlite"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/pkg/config"
)

const connectAttempts = 5

// Schema models per service, in creation order
var (
	InvoiceModels = []interface{}{&entities.Invoice{}}
	MeetingModels = []interface{}{&entities.Meeting{}, &entities.Insight{}}
)

// NewDB opens the configured database using GORM and verifies it answers
func NewDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := pingWithRetry(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connected successfully (%s)", cfg.Database.Driver)

	return db, nil
}

func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DatabaseDSN()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(withForeignKeys(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// withForeignKeys turns on FK enforcement so insight rows cascade with their meeting
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// pingWithRetry covers the window where the database container is still starting
func pingWithRetry(ctx context.Context, sqlDB *sql.DB) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts-1),
		ctx,
	)

	return backoff.RetryNotify(
		func() error { return sqlDB.PingContext(ctx) },
		policy,
		func(err error, wait time.Duration) {
			log.Printf("⏳ Database not ready (%v), retrying in %s", err, wait.Round(time.Millisecond))
		},
	)
}

// AutoMigrate creates missing tables, columns and indexes for the given models
func AutoMigrate(db *gorm.DB, models ...interface{}) error {
	log.Println("🔄 Running GORM AutoMigrate...")

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}

	log.Printf("✅ Schema ready (%d tables)", len(models))
	return nil
}

// RunMigrations applies versioned SQL migrations using rubenv/sql-migrate.
// max limits the number of steps; 0 applies all pending migrations.
func RunMigrations(db *gorm.DB, dialect string, source migrate.MigrationSource, direction migrate.MigrationDirection, max int) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate, error: %w", err)
	}

	n, err := migrate.ExecMax(sqlDB, dialect, source, direction, max)
	if err != nil {
		return n, fmt.Errorf("failed to apply migration, error: %w", err)
	}

	return n, nil
}

// MigrationStatus lists the migration records of the given source
func MigrationStatus(db *gorm.DB, dialect string) ([]*migrate.MigrationRecord, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	return migrate.GetMigrationRecords(sqlDB, dialect)
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("✅ Database connection closed")
	return nil
}

// Dialect maps a configured driver to its sql-migrate dialect name
func Dialect(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}
