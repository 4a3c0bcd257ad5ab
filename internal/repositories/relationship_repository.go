package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// RelationshipRepository defines block and mute edge operations. Blocks and
// mutes are independent of the follow graph.
type RelationshipRepository interface {
	Block(actorID, targetID uint) error
	Unblock(actorID, targetID uint) error
	// IsBlocked reports whether a block exists in either direction.
	IsBlocked(a, b uint) (bool, error)
	Mute(actorID, targetID uint) error
	Unmute(actorID, targetID uint) error
	GetMutedIDs(actorID uint) ([]uint, error)
	// GetBlockedPeerIDs returns every user in a block relationship with
	// userID, whichever side created the block.
	GetBlockedPeerIDs(userID uint) ([]uint, error)
}

// PostgresRelationshipRepository implements RelationshipRepository for PostgreSQL
type PostgresRelationshipRepository struct {
	db *gorm.DB
}

// NewPostgresRelationshipRepository creates a new PostgresRelationshipRepository
func NewPostgresRelationshipRepository(db *gorm.DB) *PostgresRelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

func (r *PostgresRelationshipRepository) Block(actorID, targetID uint) error {
	block := &models.BlockedUser{ActorID: actorID, TargetID: targetID}
	if err := r.db.Create(block).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %d already blocked: %w", targetID, apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *PostgresRelationshipRepository) Unblock(actorID, targetID uint) error {
	res := r.db.Where("actor_id = ? AND target_id = ?", actorID, targetID).Delete(&models.BlockedUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("block edge: %w", apperr.ErrNotFound)
	}
	return nil
}

func (r *PostgresRelationshipRepository) IsBlocked(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlockedUser{}).
		Where("(actor_id = ? AND target_id = ?) OR (actor_id = ? AND target_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRelationshipRepository) Mute(actorID, targetID uint) error {
	mute := &models.MutedUser{ActorID: actorID, TargetID: targetID}
	if err := r.db.Create(mute).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %d already muted: %w", targetID, apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *PostgresRelationshipRepository) Unmute(actorID, targetID uint) error {
	res := r.db.Where("actor_id = ? AND target_id = ?", actorID, targetID).Delete(&models.MutedUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mute edge: %w", apperr.ErrNotFound)
	}
	return nil
}

func (r *PostgresRelationshipRepository) GetMutedIDs(actorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.MutedUser{}).Where("actor_id = ?", actorID).Pluck("target_id", &ids).Error
	return ids, err
}

func (r *PostgresRelationshipRepository) GetBlockedPeerIDs(userID uint) ([]uint, error) {
	var edges []models.BlockedUser
	err := r.db.Where("actor_id = ? OR target_id = ?", userID, userID).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.ActorID == userID {
			ids = append(ids, e.TargetID)
		} else {
			ids = append(ids, e.ActorID)
		}
	}
	return ids, nil
}
