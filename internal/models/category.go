package models

import "time"

// Category is a named grouping of items owned by its creator
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatorID   int64     `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsCreatedBy reports whether userID created the category
func (c *Category) IsCreatedBy(userID int64) bool {
	return userID > 0 && c.CreatorID == userID
}
