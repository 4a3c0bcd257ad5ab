package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	// Toggle creates a pending edge when none exists and removes the edge
	// (whatever its status) when one does. It returns the resulting state.
	ToggleFollow(followerID, followingID uint) (*models.FollowState, error)
	// Respond accepts or rejects a pending follow request. Only the followed
	// user may respond, and only while the edge is pending.
	// Unfollow removes the follow edge regardless of status. Removing a
	// missing edge is a no-op.
	Unfollow(followerID, followingID uint) error
	Respond(followID, ownerID uint, status models.FollowStatus) (*models.Follow, error)
	GetFollow(followerID, followingID uint) (*models.Follow, error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	GetPendingRequests(userID uint) ([]models.Follow, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) ToggleFollow(followerID, followingID uint) (*models.FollowState, error) {
	state := &models.FollowState{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var follow models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error
		switch {
		case err == nil:
			if err := tx.Delete(&follow).Error; err != nil {
				return err
			}
			state.Following = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			follow = models.Follow{
				FollowerID:  followerID,
				FollowingID: followingID,
				Status:      models.FollowStatusPending,
			}
			if err := tx.Create(&follow).Error; err != nil {
				return translateDuplicate(err, "follow edge already exists")
			}
			state.Following = true
			state.Status = models.FollowStatusPending
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *PostgresFollowRepository) Unfollow(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) Respond(followID, ownerID uint, status models.FollowStatus) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.First(&follow, followID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("follow request %d: %w", followID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if follow.FollowingID != ownerID {
		return nil, fmt.Errorf("follow request %d is not addressed to user %d: %w", followID, ownerID, apperr.ErrForbidden)
	}
	if follow.Status != models.FollowStatusPending {
		return nil, fmt.Errorf("follow request %d is already %s: %w", followID, follow.Status, apperr.ErrInvalidState)
	}
	follow.Status = status
	if err := r.db.Save(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) GetFollow(followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("follow edge: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.FollowStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").
			Where("following_id = ? AND status = ?", userID, models.FollowStatusAccepted),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").
			Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetPendingRequests(userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("following_id = ? AND status = ?", userID, models.FollowStatusPending).
		Order("created_at DESC").Find(&follows).Error
	return follows, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.FollowStatusAccepted).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted).Count(&count).Error
	return count, err
}
