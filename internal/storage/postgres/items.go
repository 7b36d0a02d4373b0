package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

const itemColumns = `id, name, description, category_id, creator_id, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	var i models.Item
	if err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID, &i.CreatorID, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &i, nil
}

// ListItemsByCategory counts and pages in one transaction so total and page
// agree with each other.
func (s *Store) ListItemsByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]models.Item, int64, error) {
	var (
		items []models.Item
		total int64
	)
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM items WHERE category_id = $1`, categoryID).Scan(&total); err != nil {
			return mapError(err)
		}

		rows, err := tx.Query(ctx,
			`SELECT `+itemColumns+` FROM items WHERE category_id = $1
			 ORDER BY id LIMIT $2 OFFSET $3`,
			categoryID, limit, offset)
		if err != nil {
			return mapError(err)
		}
		items, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.Item])
		return mapError(err)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	return scanItem(s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
}

func (s *Store) GetItemByName(ctx context.Context, name string) (*models.Item, error) {
	return scanItem(s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE name = $1`, name))
}

// CreateItem inserts an item. A taken name yields storage.ErrAlreadyExists
// and a vanished category yields storage.ErrNotFound.
func (s *Store) CreateItem(ctx context.Context, categoryID, creatorID int64, name, description string) (*models.Item, error) {
	return scanItem(s.db.QueryRow(ctx,
		`INSERT INTO items (name, description, category_id, creator_id) VALUES ($1, $2, $3, $4)
		 RETURNING `+itemColumns,
		name, description, categoryID, creatorID))
}

// UpdateItem applies the non-nil fields of patch.
func (s *Store) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	if patch.IsEmpty() {
		return s.GetItemByID(ctx, id)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), itemColumns)
	return scanItem(s.db.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
