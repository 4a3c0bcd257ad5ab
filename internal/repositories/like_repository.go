package repositories

import (
	"errors"

	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for polymorphic like operations
type LikeRepository interface {
	// Toggle inserts or deletes the (user, target) like row and recomputes the
	// count, all within one transaction. Two rapid identical calls land on the
	// two sides of the toggle instead of double-counting.
	ToggleLike(userID uint, ref models.ContentRef) (*models.LikeState, error)
	Count(ref models.ContentRef) (int64, error)
	HasLiked(userID uint, ref models.ContentRef) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) ToggleLike(userID uint, ref models.ContentRef) (*models.LikeState, error) {
	state := &models.LikeState{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, ref.Kind, ref.ID).
			First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			state.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.Like{UserID: userID, TargetType: ref.Kind, TargetID: ref.ID}
			if err := tx.Create(&like).Error; err != nil {
				return translateDuplicate(err, "like already exists")
			}
			state.Liked = true
		default:
			return err
		}
		return tx.Model(&models.Like{}).
			Where("target_type = ? AND target_id = ?", ref.Kind, ref.ID).
			Count(&state.Count).Error
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *PostgresLikeRepository) Count(ref models.ContentRef) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", ref.Kind, ref.ID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) HasLiked(userID uint, ref models.ContentRef) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, ref.Kind, ref.ID).
		Count(&count).Error
	return count > 0, err
}
