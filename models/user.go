package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `json:"-"` // nil for Google-only accounts
	FullName      string         `json:"full_name"`
	AvatarURL     string         `json:"avatar_url"`
	GoogleID      *string        `json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"`
	Role          Role           `json:"role" gorm:"foreignKey:RoleID"`
	RoleID        uint           `json:"role_id"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
	EmailVerified bool           `json:"email_verified"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the public projection of a user as joined onto reviews. It reads
// from the users table and is never written through.
type Profile struct {
	UserID    uuid.UUID `json:"user_id" gorm:"column:id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
}

func (Profile) TableName() string {
	return "users"
}
