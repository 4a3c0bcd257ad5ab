package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// SavedItemRepository defines the interface for bookmark operations
type SavedItemRepository interface {
	// Toggle saves or unsaves the target for the user within one transaction,
	// same scheme as LikeRepository.Toggle.
	ToggleSave(userID uint, ref models.ContentRef) (*models.SaveState, error)
	SetFavorite(userID uint, ref models.ContentRef, isFavorite bool) error
	IsSaved(userID uint, ref models.ContentRef) (bool, error)
	ListByUser(userID uint) ([]models.SavedItem, error)
	// GetSavedIDs returns which of the given ids of one kind the user saved.
	GetSavedIDs(userID uint, kind models.ContentKind, ids []string) (map[string]bool, error)
}

// PostgresSavedItemRepository implements SavedItemRepository
type PostgresSavedItemRepository struct {
	db *gorm.DB
}

func NewPostgresSavedItemRepository(db *gorm.DB) *PostgresSavedItemRepository {
	return &PostgresSavedItemRepository{db: db}
}

func (r *PostgresSavedItemRepository) ToggleSave(userID uint, ref models.ContentRef) (*models.SaveState, error) {
	state := &models.SaveState{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var item models.SavedItem
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, ref.Kind, ref.ID).
			First(&item).Error
		switch {
		case err == nil:
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			state.Saved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.SavedItem{UserID: userID, TargetType: ref.Kind, TargetID: ref.ID}
			if err := tx.Create(&item).Error; err != nil {
				return translateDuplicate(err, "saved item already exists")
			}
			state.Saved = true
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

func (r *PostgresSavedItemRepository) SetFavorite(userID uint, ref models.ContentRef, isFavorite bool) error {
	res := r.db.Model(&models.SavedItem{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, ref.Kind, ref.ID).
		Update("is_favorite", isFavorite)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saved item %s: %w", ref, apperr.ErrNotFound)
	}
	return nil
}

func (r *PostgresSavedItemRepository) IsSaved(userID uint, ref models.ContentRef) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedItem{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, ref.Kind, ref.ID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresSavedItemRepository) ListByUser(userID uint) ([]models.SavedItem, error) {
	var items []models.SavedItem
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *PostgresSavedItemRepository) GetSavedIDs(userID uint, kind models.ContentKind, ids []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(ids) == 0 {
		return result, nil
	}
	var items []models.SavedItem
	err := r.db.Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, kind, ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		result[it.TargetID] = true
	}
	return result, nil
}
