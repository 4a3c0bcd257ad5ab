package models

import "time"

// FollowStatus is the acceptance state of a follow edge.
type FollowStatus string

const (
	FollowStatusPending  FollowStatus = "pending"
	FollowStatusAccepted FollowStatus = "accepted"
	FollowStatusRejected FollowStatus = "rejected"
)

// Follow represents a directed follow edge between two users. The composite
// unique index prevents duplicate edges for the same ordered pair.
type Follow struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	FollowerID  uint         `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint         `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Status      FollowStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FollowState is the outcome of a follow toggle, returned to the client so
// optimistic UI never has to guess the server-side result.
type FollowState struct {
	Following bool         `json:"following"`
	Status    FollowStatus `json:"status,omitempty"`
}

// RespondFollowRequest defines the request body for accepting or rejecting a
// pending follow request.
type RespondFollowRequest struct {
	Status FollowStatus `json:"status" validate:"required,oneof=accepted rejected"`
}
