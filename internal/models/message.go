package models

import "time"

// DeletedMessageBody is rendered in place of a soft-deleted message's content.
const DeletedMessageBody = "[deleted]"

// DeletedReplyBody is rendered for a reply preview whose target was deleted.
const DeletedReplyBody = "this message was deleted"

// Message is one direct message between two users. Deletion is soft: the row
// stays so replies keep resolving, but content is never rendered again.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index:idx_msg_pair"`
	ReceiverID uint      `json:"receiver_id" gorm:"index:idx_msg_pair"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	IsEdited   bool      `json:"is_edited" gorm:"default:false"`
	IsDeleted  bool      `json:"is_deleted" gorm:"default:false"`
	ReplyToID  *uint     `json:"reply_to_id,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Sanitize replaces the content of a deleted message with the sentinel body.
// Call before serializing a message to a client.
func (m *Message) Sanitize() {
	if m.IsDeleted {
		m.Content = DeletedMessageBody
	}
}

// MessageLike is a normalized like row on a message. The join table replaces
// an embedded liked-by set so concurrent likes never race on one message row.
type MessageLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MessageID uint      `json:"message_id" gorm:"index;uniqueIndex:idx_message_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_message_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationSummary is the derived per-peer view over message rows; no
// conversation entity is stored.
type ConversationSummary struct {
	PeerID        uint      `json:"peer_id"`
	LastMessage   *Message  `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int64     `json:"unread_count"`
}

// SendMessageRequest defines the request body for sending a message.
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
	ReplyToID  *uint  `json:"reply_to_id,omitempty"`
}

// EditMessageRequest defines the request body for editing a message.
type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}
