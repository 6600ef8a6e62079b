package config

import (
	"fmt"

	"magazine-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig chuyển DatabaseConfig thành database.DBConfig
// SQLite mở file ở chế độ read-write; "rwc" chỉ khi được phép tạo schema.
func (c *Config) LoadDatabaseConfig() *database.DBConfig {
	dsn := c.Database.DSN
	if dsn == "" && c.Database.Driver == DriverSQLite {
		mode := "rw"
		if c.Database.AutoMigrate {
			mode = "rwc"
		}
		dsn = fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000", c.Database.Path, mode)
	}

	return &database.DBConfig{
		Driver:      c.Database.Driver,
		DSN:         dsn,
		AutoMigrate: c.Database.AutoMigrate,
	}
}
