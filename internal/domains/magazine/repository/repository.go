package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/infrastructure/database"
	"magazine-backend/internal/shared/crud"
)

type sqlRepository struct {
	db *database.DB
}

func NewRepository(db *database.DB) RepositoryInterface {
	return &sqlRepository{db: db}
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

// Create inserts the magazine, then links it to every key in fields["authors"].
// A link failure is logged; the magazine row stays and its key is returned.
func (r *sqlRepository) Create(ctx context.Context, fields crud.Fields) (int64, error) {
	q := r.db.Builder.
		Insert(model.Table).
		Columns(model.FieldNames...).
		Values(crud.Values(fields, model.FieldNames)...)

	key, err := r.db.InsertReturningKey(ctx, q, model.KeyColumn)
	if err != nil {
		return 0, fmt.Errorf("failed to create magazine: %w", err)
	}
	if key <= 0 {
		return 0, fmt.Errorf("failed to create magazine: store returned key %d", key)
	}

	if fields.Has(model.AuthorsField) {
		authors, ok := crud.KeySet(fields[model.AuthorsField])
		if !ok {
			log.Warn().Int64("magazine_key", key).Msg("⚠️ Authors is not an array, magazine created without links")
			return key, nil
		}
		if err := r.linkAuthors(ctx, key, authors); err != nil {
			log.Error().Err(err).Int64("magazine_key", key).Msg("❌ Failed to link authors to new magazine")
		}
	}

	return key, nil
}

// linkAuthors appends one link row per author key in a single statement.
// Links are never replaced; an empty set issues nothing.
func (r *sqlRepository) linkAuthors(ctx context.Context, magazineKey int64, authors []int64) error {
	if len(authors) == 0 {
		return nil
	}

	q := r.db.Builder.Insert(model.LinkTable).Columns(model.KeyColumn, model.LinkAuthorKey)
	for _, authorKey := range authors {
		q = q.Values(magazineKey, authorKey)
	}

	if _, err := q.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to link authors: %w", err)
	}

	return nil
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

func (r *sqlRepository) Read(ctx context.Context, page, perPage int) ([]model.Magazine, error) {
	rows, err := r.db.Builder.
		Select(model.Columns...).
		From(model.Table).
		Limit(uint64(perPage)).
		Offset(crud.Offset(page, perPage)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query magazines: %w", err)
	}
	defer rows.Close()

	magazines := []model.Magazine{}
	for rows.Next() {
		var m model.Magazine
		if err := rows.Scan(&m.MagazineKey, &m.Title, &m.Short, &m.Image, &m.Published); err != nil {
			return nil, fmt.Errorf("failed to scan magazine: %w", err)
		}
		m.Authors = []int64{}
		magazines = append(magazines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating magazines: %w", err)
	}

	if len(magazines) == 0 {
		return magazines, nil
	}

	keys := lo.Map(magazines, func(m model.Magazine, _ int) int64 { return m.MagazineKey })
	links, err := r.authorsOf(ctx, keys)
	if err != nil {
		return nil, err
	}

	for i := range magazines {
		if authors, ok := links[magazines[i].MagazineKey]; ok {
			magazines[i].Authors = authors
		}
	}

	return magazines, nil
}

// authorsOf loads the link rows of a page in one query, grouped by magazine.
func (r *sqlRepository) authorsOf(ctx context.Context, magazineKeys []int64) (map[int64][]int64, error) {
	rows, err := r.db.Builder.
		Select(model.KeyColumn, model.LinkAuthorKey).
		From(model.LinkTable).
		Where(squirrel.Eq{model.KeyColumn: magazineKeys}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query magazine authors: %w", err)
	}
	defer rows.Close()

	type link struct{ magazine, author int64 }
	var all []link
	for rows.Next() {
		var l link
		if err := rows.Scan(&l.magazine, &l.author); err != nil {
			return nil, fmt.Errorf("failed to scan magazine author: %w", err)
		}
		all = append(all, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating magazine authors: %w", err)
	}

	grouped := lo.GroupBy(all, func(l link) int64 { return l.magazine })
	return lo.MapValues(grouped, func(ls []link, _ int64) []int64 {
		return lo.Map(ls, func(l link, _ int) int64 { return l.author })
	}), nil
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

// Update appends links first, then updates the recognized columns.
// A body that only carries authors succeeds once the links are in,
// provided the magazine exists.
func (r *sqlRepository) Update(ctx context.Context, key int64, fields crud.Fields) error {
	set := crud.Assignments(fields, model.FieldNames)

	var authors []int64
	if fields.Has(model.AuthorsField) {
		keys, ok := crud.KeySet(fields[model.AuthorsField])
		if !ok {
			return model.ErrAuthorsNotArray
		}
		authors = keys
	}

	if len(set) == 0 {
		if len(authors) == 0 {
			return crud.ErrNothingToUpdate
		}
		exists, err := r.exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return crud.ErrNotFound
		}
		return r.linkAuthors(ctx, key, authors)
	}

	if err := r.linkAuthors(ctx, key, authors); err != nil {
		return err
	}

	n, err := database.RowsAffected(r.db.Builder.
		Update(model.Table).
		SetMap(set).
		Where(squirrel.Eq{model.KeyColumn: key}).
		ExecContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to update magazine: %w", err)
	}
	if n == 0 {
		return crud.ErrNotFound
	}

	return nil
}

func (r *sqlRepository) exists(ctx context.Context, key int64) (bool, error) {
	var n int64
	err := r.db.Builder.
		Select("COUNT(*)").
		From(model.Table).
		Where(squirrel.Eq{model.KeyColumn: key}).
		QueryRowContext(ctx).
		Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up magazine: %w", err)
	}
	return n > 0, nil
}

// ════════════════════════════════════════════════════════════════
// DELETE
// ════════════════════════════════════════════════════════════════

// Delete removes the links and the magazine row. Both statements are
// always attempted; the result reports the magazine row.
func (r *sqlRepository) Delete(ctx context.Context, key int64) error {
	_, linkErr := r.db.Builder.
		Delete(model.LinkTable).
		Where(squirrel.Eq{model.KeyColumn: key}).
		ExecContext(ctx)
	if linkErr != nil {
		linkErr = fmt.Errorf("failed to delete magazine authors: %w", linkErr)
	}

	n, err := database.RowsAffected(r.db.Builder.
		Delete(model.Table).
		Where(squirrel.Eq{model.KeyColumn: key}).
		ExecContext(ctx))
	if err != nil {
		return errors.Join(linkErr, fmt.Errorf("failed to delete magazine: %w", err))
	}
	if linkErr != nil {
		return linkErr
	}
	if n == 0 {
		return crud.ErrNotFound
	}

	return nil
}
