package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CafeImage struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CafeID   uuid.UUID `json:"cafe_id" gorm:"type:uuid;not null;index"`
	ImageURL string    `json:"image_url" gorm:"not null"`
	// At most one primary image per cafe by convention; not enforced at write
	// time, the newest primary wins in the UI.
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *CafeImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CafeImage) TableName() string {
	return "cafe_images"
}
