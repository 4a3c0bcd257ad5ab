package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct messaging operations.
// Conversations are not stored; they are derived from message rows per peer.
type MessageRepository interface {
	// Send stores a message. When ReplyToID is set the referenced message must
	// be between the same two users; dangling and cross-conversation replies
	// are rejected.
	Send(msg *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	// Edit updates content. Only the sender may edit; a deleted message may
	// not be edited.
	Edit(id, editorID uint, content string) (*models.Message, error)
	// Delete soft-deletes. Only the sender may delete; deleted is terminal.
	Delete(id, actorID uint) (*models.Message, error)
	// ToggleMessageLike likes or unlikes a message. Only the two
	// participants of the conversation may react.
	ToggleMessageLike(id, userID uint) (*models.LikeState, error)
	CountMessageLikes(id uint) (int64, error)
	// ListBetween returns the newest limit messages of the pair in
	// chronological order.
	ListBetween(userID, peerID uint, limit int) ([]models.Message, error)
	MarkConversationRead(userID, peerID uint) error
	ListConversations(userID uint) ([]models.ConversationSummary, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Send(msg *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if msg.ReplyToID != nil {
			var target models.Message
			if err := tx.First(&target, *msg.ReplyToID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("reply target %d does not exist: %w", *msg.ReplyToID, apperr.ErrInvalidReference)
				}
				return err
			}
			if !samePair(&target, msg) {
				return fmt.Errorf("reply target %d belongs to another conversation: %w", target.ID, apperr.ErrInvalidReference)
			}
		}
		return tx.Create(msg).Error
	})
}

// samePair reports whether two messages involve the same two users,
// regardless of direction.
func samePair(a, b *models.Message) bool {
	return (a.SenderID == b.SenderID && a.ReceiverID == b.ReceiverID) ||
		(a.SenderID == b.ReceiverID && a.ReceiverID == b.SenderID)
}

func (r *PostgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) Edit(id, editorID uint, content string) (*models.Message, error) {
	var msg models.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
			}
			return err
		}
		if msg.SenderID != editorID {
			return fmt.Errorf("user %d is not the sender of message %d: %w", editorID, id, apperr.ErrForbidden)
		}
		if msg.IsDeleted {
			return fmt.Errorf("message %d is deleted: %w", id, apperr.ErrInvalidState)
		}
		msg.Content = content
		msg.IsEdited = true
		return tx.Save(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) Delete(id, actorID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
			}
			return err
		}
		if msg.SenderID != actorID {
			return fmt.Errorf("user %d is not the sender of message %d: %w", actorID, id, apperr.ErrForbidden)
		}
		if msg.IsDeleted {
			return fmt.Errorf("message %d is already deleted: %w", id, apperr.ErrInvalidState)
		}
		msg.IsDeleted = true
		return tx.Save(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) ToggleMessageLike(id, userID uint) (*models.LikeState, error) {
	state := &models.LikeState{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var msg models.Message
		if err := tx.First(&msg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
			}
			return err
		}
		if msg.SenderID != userID && msg.ReceiverID != userID {
			return fmt.Errorf("user %d is not part of message %d's conversation: %w", userID, id, apperr.ErrForbidden)
		}
		var like models.MessageLike
		err := tx.Where("message_id = ? AND user_id = ?", id, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			state.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.MessageLike{MessageID: id, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return translateDuplicate(err, "message like already exists")
			}
			state.Liked = true
		default:
			return err
		}
		return tx.Model(&models.MessageLike{}).Where("message_id = ?", id).Count(&state.Count).Error
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *PostgresMessageRepository) CountMessageLikes(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MessageLike{}).Where("message_id = ?", id).Count(&count).Error
	return count, err
}

func (r *PostgresMessageRepository) ListBetween(userID, peerID uint, limit int) ([]models.Message, error) {
	var msgs []models.Message
	q := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID,
	).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	reverseMessages(msgs)
	return msgs, nil
}

// reverseMessages flips a newest-first window into chronological order.
func reverseMessages(msgs []models.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

func (r *PostgresMessageRepository) MarkConversationRead(userID, peerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = false", userID, peerID).
		Update("is_read", true).Error
}

// ListConversations groups all messages touching the user by counterpart.
// One ordered scan: the first message seen per peer is the newest, unread
// counts accumulate as rows go by.
func (r *PostgresMessageRepository) ListConversations(userID uint) ([]models.ConversationSummary, error) {
	var msgs []models.Message
	err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return deriveConversations(userID, msgs), nil
}

// deriveConversations builds per-peer summaries from messages ordered newest
// first. Shared with the in-memory store.
func deriveConversations(userID uint, newestFirst []models.Message) []models.ConversationSummary {
	index := make(map[uint]int)
	summaries := make([]models.ConversationSummary, 0)
	for i := range newestFirst {
		m := newestFirst[i]
		peer := m.SenderID
		if peer == userID {
			peer = m.ReceiverID
		}
		pos, seen := index[peer]
		if !seen {
			last := m
			last.Sanitize()
			pos = len(summaries)
			index[peer] = pos
			summaries = append(summaries, models.ConversationSummary{
				PeerID:        peer,
				LastMessage:   &last,
				LastMessageAt: m.CreatedAt,
			})
		}
		if m.ReceiverID == userID && !m.IsRead {
			summaries[pos].UnreadCount++
		}
	}
	return summaries
}
