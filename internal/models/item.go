package models

import "time"

// Item belongs to a category and is owned by its creator, who is not
// necessarily the category's creator.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	CreatorID   int64     `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsCreatedBy reports whether userID created the item
func (i *Item) IsCreatedBy(userID int64) bool {
	return userID > 0 && i.CreatorID == userID
}

// ItemPatch is a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}
