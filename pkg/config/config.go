package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported generative-text providers
const (
	ProviderGemini    = "gemini"
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Database DatabaseConfig `envconfig:"DB"`
	LLM      LLMConfig      `envconfig:"LLM"`
	Storage  StorageConfig  `envconfig:"STORAGE"`
}

// ServerConfig holds server configuration (SERVER_*)
type ServerConfig struct {
	Port            string   `split_words:"true" default:"8080"`
	Host            string   `split_words:"true" default:"0.0.0.0"`
	Environment     string   `split_words:"true" default:"development"`
	AllowedOrigins  []string `split_words:"true" default:"*"`
	ShutdownTimeout int      `split_words:"true" default:"10"`
	BodyLimit       string   `split_words:"true" default:"20M"`
}

// DatabaseConfig holds database configuration (DB_*)
type DatabaseConfig struct {
	Driver      string `split_words:"true"`
	URL         string `split_words:"true"`
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true"`
	SSLMode     string `split_words:"true" default:"disable"`
	File        string `split_words:"true"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"true"`
}

// LLMConfig selects and configures the insight extraction provider (LLM_*)
type LLMConfig struct {
	Provider string        `split_words:"true" default:"gemini"`
	APIKey   string        `split_words:"true"`
	Model    string        `split_words:"true"`
	BaseURL  string        `split_words:"true"`
	Timeout  time.Duration `split_words:"true" default:"30s"`
}

// StorageConfig holds object storage configuration for upload archival (STORAGE_*)
type StorageConfig struct {
	Enabled         bool   `split_words:"true" default:"false"`
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"smart-insights"`
	UseSSL          bool   `split_words:"true" default:"false"`
}

// ServiceDefaults are the per-binary fallbacks applied when the environment is silent
type ServiceDefaults struct {
	DBDriver string
	DBName   string
}

// Load loads configuration from .env and environment variables
func Load(defaults ServiceDefaults) (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults(defaults)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults(defaults ServiceDefaults) {
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.Database.Driver == "" {
		c.Database.Driver = driverFromURL(c.Database.URL)
	}
	if c.Database.Driver == "" {
		c.Database.Driver = defaults.DBDriver
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Name == "" {
		c.Database.Name = defaults.DBName
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Name == "" {
			return fmt.Errorf("DB_NAME or DB_URL is required for postgres")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderNone:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	if c.Storage.Enabled && (c.Storage.Endpoint == "" || c.Storage.BucketName == "") {
		return fmt.Errorf("STORAGE_ENDPOINT and STORAGE_BUCKET_NAME are required when storage is enabled")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// DatabaseDSN returns the connection string for the configured driver
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		if c.Database.URL != "" {
			return strings.TrimPrefix(c.Database.URL, "sqlite:///")
		}
		if c.Database.File != "" {
			return c.Database.File
		}
		return fmt.Sprintf("%s.db", c.Database.Name)
	}

	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ServerAddr returns the listen address
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func driverFromURL(url string) string {
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		return DriverSQLite
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	}
	return ""
}
