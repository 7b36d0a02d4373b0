package sqlite

import (
	"context"
	"strings"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

const itemColumns = `id, name, description, category_id, creator_id, created_at, updated_at`

func scanItem(row scanner) (*models.Item, error) {
	var (
		i                    models.Item
		createdAt, updatedAt int64
	)
	if err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID, &i.CreatorID, &createdAt, &updatedAt); err != nil {
		return nil, mapError(err)
	}
	i.CreatedAt = fromMillis(createdAt)
	i.UpdatedAt = fromMillis(updatedAt)
	return &i, nil
}

func (s *Store) ListItemsByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]models.Item, int64, error) {
	var (
		items = []models.Item{}
		total int64
	)
	err := s.withTx(ctx, func(tx DBTX) error {
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM items WHERE category_id = ?`, categoryID).Scan(&total); err != nil {
			return mapError(err)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE category_id = ?
			 ORDER BY id LIMIT ? OFFSET ?`,
			categoryID, limit, offset)
		if err != nil {
			return mapError(err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return mapError(rows.Err())
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	return scanItem(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
}

func (s *Store) GetItemByName(ctx context.Context, name string) (*models.Item, error) {
	return scanItem(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE name = ?`, name))
}

func (s *Store) CreateItem(ctx context.Context, categoryID, creatorID int64, name, description string) (*models.Item, error) {
	now := toMillis(s.now())
	return scanItem(s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO items (name, description, category_id, creator_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+itemColumns,
		name, description, categoryID, creatorID, now, now))
}

// UpdateItem applies the non-nil fields of patch.
func (s *Store) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	if patch.IsEmpty() {
		return s.GetItemByID(ctx, id)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, toMillis(s.now()), id)

	return scanItem(s.sqlDB.QueryRowContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+itemColumns,
		args...))
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
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
}
