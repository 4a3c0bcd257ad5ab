package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// CreateComment stores a comment. When ParentID is set the parent must
	// exist and share the comment's (target_type, target_id).
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListByTarget(ref models.ContentRef) ([]models.Comment, error)
	CountByTarget(ref models.ContentRef) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if comment.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("parent comment %d does not exist: %w", *comment.ParentID, apperr.ErrInvalidReference)
				}
				return err
			}
			if parent.TargetType != comment.TargetType || parent.TargetID != comment.TargetID {
				return fmt.Errorf("parent comment %d belongs to %s/%s: %w",
					parent.ID, parent.TargetType, parent.TargetID, apperr.ErrInvalidReference)
			}
		}
		return tx.Create(comment).Error
	})
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) ListByTarget(ref models.ContentRef) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("target_type = ? AND target_id = ?", ref.Kind, ref.ID).
		Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CountByTarget(ref models.ContentRef) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ?", ref.Kind, ref.ID).Count(&count).Error
	return count, err
}
