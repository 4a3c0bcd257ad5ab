package models

import "time"

// Project is a portfolio project published by a user or firm.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty" gorm:"size:60;index"`
	Location    string    `json:"location,omitempty"`
	Year        int       `json:"year,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProjectRequest defines the request body for creating a project.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=160"`
	Description string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=60"`
	Location    string `json:"location,omitempty" validate:"omitempty,max=120"`
	Year        int    `json:"year,omitempty" validate:"omitempty,min=1800,max=2100"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}
