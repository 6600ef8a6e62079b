package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"magazine-backend/internal/domains/author/model"
	"magazine-backend/internal/infrastructure/database"
	"magazine-backend/internal/shared/crud"
)

// sqlRepository implements RepositoryInterface over the Storage Gateway.
type sqlRepository struct {
	db *database.DB
}

// NewRepository receives the shared gateway from the container.
func NewRepository(db *database.DB) RepositoryInterface {
	return &sqlRepository{db: db}
}

// Create inserts first/second/third name; absent names are stored as NULL.
func (r *sqlRepository) Create(ctx context.Context, fields crud.Fields) (int64, error) {
	q := r.db.Builder.
		Insert(model.Table).
		Columns(model.FieldNames...).
		Values(crud.Values(fields, model.FieldNames)...)

	key, err := r.db.InsertReturningKey(ctx, q, model.KeyColumn)
	if err != nil {
		return 0, fmt.Errorf("failed to create author: %w", err)
	}
	if key <= 0 {
		return 0, fmt.Errorf("failed to create author: store returned key %d", key)
	}

	return key, nil
}

// Read returns one page in storage order.
func (r *sqlRepository) Read(ctx context.Context, page, perPage int) ([]model.Author, error) {
	rows, err := r.db.Builder.
		Select(model.Columns...).
		From(model.Table).
		Limit(uint64(perPage)).
		Offset(crud.Offset(page, perPage)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.AuthorKey, &a.FirstName, &a.SecondName, &a.ThirdName); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

// Update sets only the recognized names present in fields.
func (r *sqlRepository) Update(ctx context.Context, key int64, fields crud.Fields) error {
	set := crud.Assignments(fields, model.FieldNames)
	if len(set) == 0 {
		return crud.ErrNothingToUpdate
	}

	n, err := database.RowsAffected(r.db.Builder.
		Update(model.Table).
		SetMap(set).
		Where(squirrel.Eq{model.KeyColumn: key}).
		ExecContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if n == 0 {
		return crud.ErrNotFound
	}

	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, key int64) error {
	n, err := database.RowsAffected(r.db.Builder.
		Delete(model.Table).
		Where(squirrel.Eq{model.KeyColumn: key}).
		ExecContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if n == 0 {
		return crud.ErrNotFound
	}

	return nil
}
