package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

const categoryColumns = `id, name, description, creator_id, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return scanCategory(s.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return scanCategory(s.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name))
}

// CreateCategory inserts a category. A taken name yields storage.ErrAlreadyExists.
func (s *Store) CreateCategory(ctx context.Context, name, description string, creatorID int64) (*models.Category, error) {
	return scanCategory(s.db.QueryRow(ctx,
		`INSERT INTO categories (name, description, creator_id) VALUES ($1, $2, $3)
		 RETURNING `+categoryColumns,
		name, description, creatorID))
}

// DeleteCategory removes the category's items and then the category in one
// transaction.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM items WHERE category_id = $1`, id); err != nil {
			return mapError(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}
