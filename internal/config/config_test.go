package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("UPLOAD_MAX_SIZE", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "database.sqlite", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, int64(2<<20), cfg.Storage.MaxUploadSize)
	assert.Equal(t, "/assets", cfg.Storage.AssetURLPrefix)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "mag.sqlite", AutoMigrate: false}}
	db := cfg.LoadDatabaseConfig()
	assert.Equal(t, "file:mag.sqlite?mode=rw&_busy_timeout=5000", db.DSN)

	cfg.Database.AutoMigrate = true
	assert.Equal(t, "file:mag.sqlite?mode=rwc&_busy_timeout=5000", cfg.LoadDatabaseConfig().DSN)

	cfg.Database.DSN = ":memory:"
	assert.Equal(t, ":memory:", cfg.LoadDatabaseConfig().DSN)
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	assert.True(t, getEnvBool("X_BOOL", true))
	assert.Equal(t, time.Second, getEnvDuration("X_DUR", time.Second))
}
