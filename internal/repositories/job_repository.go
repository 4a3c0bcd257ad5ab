package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"gorm.io/gorm"
)

// JobRepository defines the interface for job posting operations
type JobRepository interface {
	CreateJob(job *models.Job) error
	GetJobByID(id uint) (*models.Job, error)
	ListJobs(activeOnly bool, page, limit int) ([]models.Job, int64, error)
	// CloseJob deactivates a listing. Only the poster may close it.
	CloseJob(id, ownerID uint) error
	// Apply stores one application per (job, user); repeats conflict.
	Apply(application *models.JobApplication) error
	GetApplication(jobID, userID uint) (*models.JobApplication, error)
}

// PostgresJobRepository implements JobRepository for PostgreSQL
type PostgresJobRepository struct {
	db *gorm.DB
}

// NewPostgresJobRepository creates a new PostgresJobRepository
func NewPostgresJobRepository(db *gorm.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateJob(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *PostgresJobRepository) GetJobByID(id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &job, nil
}

func (r *PostgresJobRepository) ListJobs(activeOnly bool, page, limit int) ([]models.Job, int64, error) {
	q := r.db.Model(&models.Job{})
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []models.Job
	offset := (page - 1) * limit
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, total, err
}

func (r *PostgresJobRepository) CloseJob(id, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("job %d: %w", id, apperr.ErrNotFound)
			}
			return err
		}
		if job.UserID != ownerID {
			return fmt.Errorf("user %d does not own job %d: %w", ownerID, id, apperr.ErrForbidden)
		}
		if !job.IsActive {
			return fmt.Errorf("job %d is already closed: %w", id, apperr.ErrInvalidState)
		}
		job.IsActive = false
		return tx.Save(&job).Error
	})
}

func (r *PostgresJobRepository) Apply(application *models.JobApplication) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.JobApplication{}).
			Where("job_id = ? AND user_id = ?", application.JobID, application.UserID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("user %d already applied to job %d: %w", application.UserID, application.JobID, apperr.ErrConflict)
		}
		if err := tx.Create(application).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %d already applied to job %d: %w", application.UserID, application.JobID, apperr.ErrConflict)
			}
			return err
		}
		return nil
	})
}

func (r *PostgresJobRepository) GetApplication(jobID, userID uint) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.Where("job_id = ? AND user_id = ?", jobID, userID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application for job %d by user %d: %w", jobID, userID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &application, nil
}
