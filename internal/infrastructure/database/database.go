package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"

	// Drivers đăng ký qua database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DBConfig chứa các thông tin cấu hình để mở Storage Gateway
type DBConfig struct {
	Driver      string // sqlite3 (mặc định) hoặc pgx
	DSN         string // file:database.sqlite?mode=rw, :memory:, postgres://...
	AutoMigrate bool   // tạo schema nếu chưa có
}

// DB là wrapper quản lý một database handle duy nhất cho toàn process.
// Builder đã được bind sẵn vào handle và placeholder format của driver,
// nên mọi statement đi qua Builder đều là parameter-bound.
type DB struct {
	SQL     *sql.DB
	Builder squirrel.StatementBuilderType
	Config  *DBConfig
}

// Open mở connection, verify bằng ping và chạy migration nếu được bật
func Open(ctx context.Context, cfg *DBConfig) (*DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}

	log.Info().Str("driver", cfg.Driver).Msg("[DATABASE] Opening database connection...")

	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// Một connection duy nhất tới database file.
		// Với :memory: mỗi connection là một database riêng, nên bắt buộc phải pin.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	db := &DB{
		SQL:     sqlDB,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(placeholderFor(cfg.Driver)).RunWith(sqlDB),
		Config:  cfg,
	}

	if err := db.HealthCheck(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	log.Info().Str("driver", cfg.Driver).Msg("[DATABASE] Connection established successfully")
	return db, nil
}

// placeholderFor chọn placeholder theo driver: ? cho sqlite3, $n cho pgx
func placeholderFor(driver string) squirrel.PlaceholderFormat {
	if driver == DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// HealthCheck verify database connectivity
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.SQL == nil {
		return fmt.Errorf("database is not initialized")
	}

	// Health check không nên chờ quá lâu
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.SQL.PingContext(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close đóng handle. Safe to call multiple times.
func (db *DB) Close() error {
	if db.SQL == nil {
		log.Debug().Msg("[DATABASE] Already closed or was never initialized")
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection...")
	err := db.SQL.Close()
	db.SQL = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// IsPostgres reports whether the gateway talks to Postgres.
func (db *DB) IsPostgres() bool {
	return db.Config.Driver == DriverPostgres
}
