package models

import "time"

// Comment is a polymorphic annotation carrying user text on a content item.
// ParentID self-references another comment to form a reply tree; a reply must
// share its parent's (target_type, target_id).
type Comment struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"index"`
	TargetType ContentKind `json:"target_type" gorm:"type:varchar(20);index:idx_comment_target"`
	TargetID   string      `json:"target_id" gorm:"index:idx_comment_target"`
	ParentID   *uint       `json:"parent_id,omitempty" gorm:"index"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment.
type CreateCommentRequest struct {
	TargetType string `json:"target_type" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
	ParentID   *uint  `json:"parent_id,omitempty"`
	Content    string `json:"content" validate:"required,min=1,max=1000"`
}
