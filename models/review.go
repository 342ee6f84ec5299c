package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CafeID uuid.UUID `json:"cafe_id" gorm:"type:uuid;not null;index"`
	// UserID is nullable: imported and admin-seeded reviews carry no author.
	UserID         *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Rating         int        `json:"rating" gorm:"not null;check:rating between 1 and 5"`
	Comment        *string    `json:"comment"`
	IsAdminCreated bool       `json:"is_admin_created" gorm:"default:false"`
	CreatedAt      time.Time  `json:"created_at"`

	// Profile is merged in-memory by the repository, never preloaded.
	Profile *Profile `json:"profile,omitempty" gorm:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
