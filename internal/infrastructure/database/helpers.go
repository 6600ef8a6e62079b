package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// InsertReturningKey chạy INSERT và trả về identity vừa được tạo.
// SQLite dùng LastInsertId; pgx stdlib không hỗ trợ LastInsertId nên Postgres dùng RETURNING.
func (db *DB) InsertReturningKey(ctx context.Context, q squirrel.InsertBuilder, keyColumn string) (int64, error) {
	if db.IsPostgres() {
		var key int64
		if err := q.Suffix("RETURNING " + keyColumn).QueryRowContext(ctx).Scan(&key); err != nil {
			return 0, err
		}
		return key, nil
	}

	res, err := q.ExecContext(ctx)
	if err != nil {
		return 0, err
	}

	key, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted key: %w", err)
	}

	return key, nil
}

// RowsAffected unwraps an Exec result into the number of touched rows.
func RowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n, nil
}
