package models

import "time"

// SavedItem is a polymorphic bookmark. At most one row per (user, target)
// tuple, same uniqueness scheme as Like.
type SavedItem struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"index;uniqueIndex:idx_user_target_save"`
	TargetType ContentKind `json:"target_type" gorm:"type:varchar(20);uniqueIndex:idx_user_target_save"`
	TargetID   string      `json:"target_id" gorm:"index;uniqueIndex:idx_user_target_save"`
	IsFavorite bool        `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SaveState is the outcome of a save toggle.
type SaveState struct {
	Saved bool `json:"saved"`
}

// SetFavoriteRequest defines the request body for favoriting a saved item.
type SetFavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}
