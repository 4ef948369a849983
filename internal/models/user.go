package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account on the platform. Role separates regular users from
// the admin panel; IsActive lets admins suspend an account without touching
// its listings.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Phone          string         `gorm:"size:30" json:"phone,omitempty"`
	Address        string         `gorm:"size:255" json:"address,omitempty"`
	Bio            string         `gorm:"size:500" json:"bio,omitempty"`
	ProfilePicture string         `gorm:"size:255" json:"profile_picture,omitempty"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
