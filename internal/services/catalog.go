package services

import (
	"context"
	"errors"
	"fmt"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

// CatalogStore is the storage surface the catalog needs.
type CatalogStore interface {
	storage.CategoryRepository
	storage.ItemRepository
}

// CatalogService applies the guard chain for categories and items:
// identity, entity resolution, ownership, payload validation, uniqueness,
// then the mutation.
type CatalogService struct {
	store    CatalogStore
	validate Validator
	log      logging.Logger
}

func NewCatalogService(store CatalogStore, validate Validator, log logging.Logger) *CatalogService {
	return &CatalogService{store: store, validate: validate, log: log}
}

func requireActor(actorID int64) error {
	if actorID <= 0 {
		return apperr.Unauthorized()
	}
	return nil
}

func requireID(id int64) error {
	if id <= 0 {
		return apperr.BadRequest("Id must be a positive integer.")
	}
	return nil
}

// ListCategories returns every category. It never fails with not found.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory resolves a category by id.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// CreateCategory creates a category owned by actorID. Names are unique
// across all users.
func (s *CatalogService) CreateCategory(ctx context.Context, actorID int64, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCategoryByName(ctx, req.Name); err == nil {
		return nil, apperr.CategoryNameExists(req.Name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup category: %w", err)
	}

	category, err := s.store.CreateCategory(ctx, req.Name, req.Description, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apperr.CategoryNameExists(req.Name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info(ctx, "category created", "category_id", category.ID, "creator_id", actorID)
	return category, nil
}

// DeleteCategory deletes a category and all of its items. Only the
// category's creator may do so.
func (s *CatalogService) DeleteCategory(ctx context.Context, actorID, id int64) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if !category.IsCreatedBy(actorID) {
		return apperr.NotCreator()
	}

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Category")
		}
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.Info(ctx, "category deleted", "category_id", id, "creator_id", actorID)
	return nil
}

// ItemPage is one page of a category's items.
type ItemPage struct {
	Items []models.Item
	Total int64
	dto.PageRequest
}

// ListItems pages through a category's items, ordered by id.
func (s *CatalogService) ListItems(ctx context.Context, categoryID int64, page dto.PageRequest) (*ItemPage, error) {
	if page.Page < 1 || page.NumberPerPage < 1 {
		return nil, apperr.BadRequest("page and number_per_page must be positive integers.")
	}
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	items, total, err := s.store.ListItemsByCategory(ctx, categoryID, page.Offset(), page.NumberPerPage)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &ItemPage{Items: items, Total: total, PageRequest: page}, nil
}

// GetItem resolves an item by id.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	item, err := s.store.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Item")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// CreateItem adds an item to an existing category. Any authenticated user
// may add items to any category; item names are unique across all users.
func (s *CatalogService) CreateItem(ctx context.Context, actorID, categoryID int64, req *dto.CreateItemRequest) (*models.Item, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetItemByName(ctx, req.Name); err == nil {
		return nil, apperr.ItemNameExists(req.Name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup item: %w", err)
	}

	item, err := s.store.CreateItem(ctx, categoryID, actorID, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, apperr.ItemNameExists(req.Name)
		case errors.Is(err, storage.ErrNotFound):
			// category deleted after it was resolved
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info(ctx, "item created", "item_id", item.ID, "category_id", categoryID, "creator_id", actorID)
	return item, nil
}

// UpdateItem applies a partial update. Only the item's creator may do so,
// and at least one field must be supplied.
func (s *CatalogService) UpdateItem(ctx context.Context, actorID, id int64, req *dto.UpdateItemRequest) (*models.Item, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsCreatedBy(actorID) {
		return nil, apperr.NotCreator()
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	patch := req.Patch()
	if patch.IsEmpty() {
		return nil, apperr.Validation("At least one of name or description must be provided.")
	}

	// any taken name conflicts, the item's own included
	if patch.Name != nil {
		if _, err := s.store.GetItemByName(ctx, *patch.Name); err == nil {
			return nil, apperr.ItemNameExists(*patch.Name)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("lookup item: %w", err)
		}
	}

	updated, err := s.store.UpdateItem(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists) && patch.Name != nil:
			return nil, apperr.ItemNameExists(*patch.Name)
		case errors.Is(err, storage.ErrNotFound):
			return nil, apperr.NotFound("Item")
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.log.Info(ctx, "item updated", "item_id", id, "creator_id", actorID)
	return updated, nil
}

// DeleteItem deletes an item. Only the item's creator may do so.
func (s *CatalogService) DeleteItem(ctx context.Context, actorID, id int64) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if !item.IsCreatedBy(actorID) {
		return apperr.NotCreator()
	}

	if err := s.store.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Item")
		}
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info(ctx, "item deleted", "item_id", id, "creator_id", actorID)
	return nil
}
