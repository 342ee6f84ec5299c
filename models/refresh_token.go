package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshToken struct {
	gorm.Model
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	User           User      `json:"user" gorm:"foreignKey:UserID"`
	Token          string    `json:"token" gorm:"not null"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
}
