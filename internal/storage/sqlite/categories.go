package sqlite

import (
	"context"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

const categoryColumns = `id, name, description, creator_id, created_at, updated_at`

func scanCategory(row scanner) (*models.Category, error) {
	var (
		c                    models.Category
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &createdAt, &updatedAt); err != nil {
		return nil, mapError(err)
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return scanCategory(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return scanCategory(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name))
}

func (s *Store) CreateCategory(ctx context.Context, name, description string, creatorID int64) (*models.Category, error) {
	now := toMillis(s.now())
	return scanCategory(s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO categories (name, description, creator_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 RETURNING `+categoryColumns,
		name, description, creatorID, now, now))
}

// DeleteCategory removes the category's items and then the category in one
// transaction.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE category_id = ?`, id); err != nil {
			return mapError(err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}
