package models

import "time"

// Like is a polymorphic annotation marking that a user liked one content
// item. At most one row may exist per (user, target) tuple, enforced by the
// composite unique index and the transactional toggle.
type Like struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	TargetType ContentKind `json:"target_type" gorm:"type:varchar(20);uniqueIndex:idx_user_target_like"`
	TargetID   string      `json:"target_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	CreatedAt  time.Time   `json:"created_at"`
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
