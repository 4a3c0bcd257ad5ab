package models

import "time"

// Job is a position posted by a firm.
type Job struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index"` // posting firm account
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Type        string     `json:"type,omitempty" gorm:"size:30"` // full-time, part-time, internship
	Salary      string     `json:"salary,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DeadlinePassed reports whether the application deadline is in the past.
// Jobs without a deadline never expire.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && j.Deadline.Before(now)
}

// JobApplication is one user's application to a job; one per (job, user).
type JobApplication struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	JobID       uint      `json:"job_id" gorm:"index;uniqueIndex:idx_job_applicant"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_job_applicant"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateJobRequest defines the request body for posting a job.
type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=160"`
	Company     string     `json:"company" validate:"required,min=2,max=160"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=6000"`
	Location    string     `json:"location,omitempty" validate:"omitempty,max=120"`
	Type        string     `json:"type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	Salary      string     `json:"salary,omitempty" validate:"omitempty,max=60"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// ApplyJobRequest defines the request body for applying to a job.
type ApplyJobRequest struct {
	CoverLetter string `json:"cover_letter,omitempty" validate:"omitempty,max=4000"`
	ResumeURL   string `json:"resume_url,omitempty" validate:"omitempty,url"`
}
