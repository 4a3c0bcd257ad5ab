package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role determines which optional profile attributes apply to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleFirm     Role = "firm"
	RoleEngineer Role = "engineer"
	RoleStudent  Role = "student"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleFirm, RoleEngineer, RoleStudent:
		return true
	}
	return false
}

// User represents a platform account: an architect, firm, engineer or student.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name"`
	Username  string `json:"username" gorm:"uniqueIndex;size:50"`
	Email     string `json:"email" gorm:"uniqueIndex;size:190"`
	Password  string `json:"-"` // bcrypt hash, never serialized
	Role      Role   `json:"role" gorm:"type:varchar(20);index"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	// Role-specific optional attributes.
	CompanyName     string `json:"company_name,omitempty"`     // firm
	CompanySize     string `json:"company_size,omitempty"`     // firm
	Website         string `json:"website,omitempty"`          // firm
	University      string `json:"university,omitempty"`       // student
	GraduationYear  int    `json:"graduation_year,omitempty"`  // student
	YearsExperience int    `json:"years_experience,omitempty"` // engineer
	Specialty       string `json:"specialty,omitempty"`        // engineer

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCompact is the reduced author/actor shape embedded in enriched responses.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ToCompact returns the compact representation of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

// RegisterRequest defines the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=admin firm engineer student"`
}

// LoginRequest defines the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for partial profile updates.
type UpdateProfileRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location        string `json:"location,omitempty" validate:"omitempty,max=120"`
	AvatarURL       string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CompanyName     string `json:"company_name,omitempty" validate:"omitempty,max=120"`
	CompanySize     string `json:"company_size,omitempty" validate:"omitempty,max=40"`
	Website         string `json:"website,omitempty" validate:"omitempty,url"`
	University      string `json:"university,omitempty" validate:"omitempty,max=120"`
	GraduationYear  int    `json:"graduation_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	YearsExperience int    `json:"years_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Specialty       string `json:"specialty,omitempty" validate:"omitempty,max=120"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	Role   Role `json:"role"`
	jwt.RegisteredClaims
}
