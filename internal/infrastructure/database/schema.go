package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Foreign keys are declared but SQLite leaves them unenforced (foreign_keys pragma off),
// so the link table never checks that an author exists.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS author (
		author_key  INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name  TEXT,
		second_name TEXT,
		third_name  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS magazine (
		magazine_key INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT,
		short        TEXT,
		image        TEXT,
		published    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS magazine_authors (
		magazine_key INTEGER NOT NULL REFERENCES magazine (magazine_key),
		author_key   INTEGER NOT NULL REFERENCES author (author_key)
	)`,
}

// Postgres would enforce the references, so they are left out to keep both drivers equal.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS author (
		author_key  BIGSERIAL PRIMARY KEY,
		first_name  TEXT,
		second_name TEXT,
		third_name  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS magazine (
		magazine_key BIGSERIAL PRIMARY KEY,
		title        TEXT,
		short        TEXT,
		image        TEXT,
		published    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS magazine_authors (
		magazine_key BIGINT NOT NULL,
		author_key   BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS magazine_authors_magazine_key_idx ON magazine_authors (magazine_key)`,
}

// Migrate tạo các bảng cần thiết nếu chưa tồn tại
func (db *DB) Migrate(ctx context.Context) error {
	statements := sqliteSchema
	if db.IsPostgres() {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := db.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	log.Info().Int("statements", len(statements)).Msg("[DATABASE] Schema is up to date")
	return nil
}
