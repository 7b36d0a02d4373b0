// Package storage defines the persistence contract of the catalog. The
// postgres and sqlite subpackages implement it.
package storage

import (
	"context"
	"errors"

	"CATALOG_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist, or when a foreign
	// key points at a row that no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a write violates a unique constraint.
	ErrAlreadyExists = errors.New("already exists")
)

// UserRepository persists accounts
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// CategoryRepository persists categories
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, name, description string, creatorID int64) (*models.Category, error)
	// DeleteCategory removes the category and all of its items in one
	// transaction.
	DeleteCategory(ctx context.Context, id int64) error
}

// ItemRepository persists items
type ItemRepository interface {
	// ListItemsByCategory returns one page of items, ordered by id, and the
	// total number of items in the category.
	ListItemsByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]models.Item, int64, error)
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemByName(ctx context.Context, name string) (*models.Item, error)
	CreateItem(ctx context.Context, categoryID, creatorID int64, name, description string) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// Store is the full persistence surface used by the services.
type Store interface {
	UserRepository
	CategoryRepository
	ItemRepository

	Ping(ctx context.Context) error
	Close() error
}
