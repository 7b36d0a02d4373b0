package dto

import (
	"strings"
	"time"

	"CATALOG_BACK-END/internal/models"
)

// CreateItemRequest represents the payload to create an item
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field
func (r *CreateItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateItemRequest represents fields allowed to update an item
// All fields are optional but at least one must be provided
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
}

// Normalize trims surrounding whitespace from every provided field
func (r *UpdateItemRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		r.Description = &description
	}
}

// Patch converts the request into a store patch
func (r *UpdateItemRequest) Patch() models.ItemPatch {
	return models.ItemPatch{Name: r.Name, Description: r.Description}
}

// ItemResponse represents an item in responses
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
	IsCreator   bool   `json:"is_creator"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ItemListResponse is one page of a category's items
type ItemListResponse struct {
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	NumberPerPage int            `json:"number_per_page"`
	Items         []ItemResponse `json:"items"`
}

// NewItemResponse converts a model, flagging whether viewerID created it
func NewItemResponse(i *models.Item, viewerID int64) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		CategoryID:  i.CategoryID,
		IsCreator:   i.IsCreatedBy(viewerID),
		CreatedAt:   i.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
