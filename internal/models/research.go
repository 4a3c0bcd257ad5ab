package models

import "time"

// ResearchPaper is a research publication shared on the platform. The file
// itself lives in external blob storage; only the path string is kept.
type ResearchPaper struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract,omitempty"`
	Field     string    `json:"field,omitempty" gorm:"size:80;index"`
	FileURL   string    `json:"file_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateResearchRequest defines the request body for publishing a paper.
type CreateResearchRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Abstract string `json:"abstract,omitempty" validate:"omitempty,max=4000"`
	Field    string `json:"field,omitempty" validate:"omitempty,max=80"`
	FileURL  string `json:"file_url,omitempty" validate:"omitempty,url"`
}
