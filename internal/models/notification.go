package models

import "time"

// NotificationType tags what produced a notification.
type NotificationType string

const (
	NotificationFollowRequest   NotificationType = "follow_request"
	NotificationFollowAccepted  NotificationType = "follow_accepted"
	NotificationLike            NotificationType = "like"
	NotificationCommentReply    NotificationType = "comment_reply"
	NotificationResearchRequest NotificationType = "research_request"
)

// Notification is an append-only event surfaced to a user and consumed by
// client polling. Rows are never deleted; only the read flag mutates.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	Type        NotificationType `json:"type" gorm:"size:30;index"`
	Title       string           `json:"title"`
	Message     string           `json:"message,omitempty"`
	Link        string           `json:"link,omitempty"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
