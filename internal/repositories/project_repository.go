package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	CreateProject(project *models.Project) error
	GetProjectByID(id uint) (*models.Project, error)
	ListProjects(category string, page, limit int) ([]models.Project, int64, error)
	DeleteProject(id uint) error
}

// PostgresProjectRepository implements ProjectRepository for PostgreSQL
type PostgresProjectRepository struct {
	db *gorm.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository
func NewPostgresProjectRepository(db *gorm.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *PostgresProjectRepository) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &project, nil
}

func (r *PostgresProjectRepository) ListProjects(category string, page, limit int) ([]models.Project, int64, error) {
	q := r.db.Model(&models.Project{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var projects []models.Project
	offset := (page - 1) * limit
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

func (r *PostgresProjectRepository) DeleteProject(id uint) error {
	res := r.db.Delete(&models.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
