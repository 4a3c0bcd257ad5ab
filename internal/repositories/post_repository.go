package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListPosts(page, limit int) ([]models.Post, int64, error)
	// ListByAuthors returns posts whose author is in the given set, newest
	// first. Used by the feed.
	ListByAuthors(authorIDs []uint, page, limit int) ([]models.Post, int64, error)
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPosts(page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) ListByAuthors(authorIDs []uint, page, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}
	var posts []models.Post
	var total int64
	if err := r.db.Model(&models.Post{}).Where("user_id IN ?", authorIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.db.Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
