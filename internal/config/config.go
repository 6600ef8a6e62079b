package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Driver      string // sqlite3, pgx
	Path        string // database file for sqlite3
	DSN         string // overrides Path when set
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// CacheConfig controls the list page cache. Disabled means a no-op cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type StorageConfig struct {
	Backend        string // local, minio
	AssetDir       string // local backend target directory
	AssetURLPrefix string // public prefix for locally stored files
	UploadTempDir  string // where uploads are spooled before validation
	MaxUploadSize  int64  // bytes
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // assets
	UseSSL    bool   // false for local
}

type LogConfig struct {
	Level  string
	Format string // console, json
	File   string // optional rotating log file
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	StorageLocal = "local"
	StorageMinIO = "minio"
)

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Magazine API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", DriverSQLite),
			Path:        getEnv("DB_PATH", "database.sqlite"),
			DSN:         getEnv("DB_DSN", ""),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", StorageLocal),
			AssetDir:       getEnv("ASSET_DIR", "assets"),
			AssetURLPrefix: getEnv("ASSET_URL_PREFIX", "/assets"),
			UploadTempDir:  getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
			MaxUploadSize:  int64(getEnvInt("UPLOAD_MAX_SIZE", 2<<20)), // 2 MB
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "assets"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			File:   getEnv("LOG_FILE", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN must be set for driver %s", DriverPostgres)
	}

	switch c.Storage.Backend {
	case StorageLocal, StorageMinIO:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE must be positive")
	}

	if !strings.HasPrefix(c.Storage.AssetURLPrefix, "/") {
		return fmt.Errorf("ASSET_URL_PREFIX must start with /")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
