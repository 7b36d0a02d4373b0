package dto

import (
	"strings"
	"time"

	"CATALOG_BACK-END/internal/models"
)

// CreateCategoryRequest represents the payload to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field
func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsCreator   bool   `json:"is_creator"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewCategoryResponse converts a model, flagging whether viewerID created it.
// viewerID is 0 for anonymous readers.
func NewCategoryResponse(c *models.Category, viewerID int64) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsCreator:   c.IsCreatedBy(viewerID),
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
