package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// ResearchRepository defines the interface for research paper operations
type ResearchRepository interface {
	CreateResearch(paper *models.ResearchPaper) error
	GetResearchByID(id uint) (*models.ResearchPaper, error)
	ListResearch(field string, page, limit int) ([]models.ResearchPaper, int64, error)
}

// PostgresResearchRepository implements ResearchRepository for PostgreSQL
type PostgresResearchRepository struct {
	db *gorm.DB
}

// NewPostgresResearchRepository creates a new PostgresResearchRepository
func NewPostgresResearchRepository(db *gorm.DB) *PostgresResearchRepository {
	return &PostgresResearchRepository{db: db}
}

func (r *PostgresResearchRepository) CreateResearch(paper *models.ResearchPaper) error {
	return r.db.Create(paper).Error
}

func (r *PostgresResearchRepository) GetResearchByID(id uint) (*models.ResearchPaper, error) {
	var paper models.ResearchPaper
	if err := r.db.First(&paper, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("research paper %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &paper, nil
}

func (r *PostgresResearchRepository) ListResearch(field string, page, limit int) ([]models.ResearchPaper, int64, error) {
	q := r.db.Model(&models.ResearchPaper{})
	if field != "" {
		q = q.Where("field = ?", field)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var papers []models.ResearchPaper
	offset := (page - 1) * limit
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&papers).Error
	return papers, total, err
}
