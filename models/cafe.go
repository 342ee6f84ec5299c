package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cafe struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     *uuid.UUID `json:"owner_id" gorm:"type:uuid;index"`
	Name        string     `json:"name" gorm:"not null;index"`
	Address     string     `json:"address" gorm:"not null"`
	Phone       *string    `json:"phone"`
	Latitude    *float64   `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude   *float64   `json:"longitude" gorm:"type:decimal(11,8)"`
	// Rating and ReviewCount are denormalized aggregates maintained on review
	// writes, never recomputed on reads.
	Rating      float64   `json:"rating" gorm:"not null;default:0;type:decimal(3,2)"`
	ReviewCount int       `json:"review_count" gorm:"not null;default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Cafe) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName pins the table explicitly; the default pluralizer inflects
// "Cafe" to "caves".
func (Cafe) TableName() string {
	return "cafes"
}

// CafeWithDetails is the read shape for the single-cafe view and, with only
// Images populated, for list rows when images are requested.
type CafeWithDetails struct {
	Cafe
	OperatingHours []OperatingHours `json:"operating_hours,omitempty" gorm:"foreignKey:CafeID"`
	Menus          []CafeMenu       `json:"cafe_menus,omitempty" gorm:"foreignKey:CafeID"`
	Reviews        []Review         `json:"reviews,omitempty" gorm:"foreignKey:CafeID"`
	Images         []CafeImage      `json:"cafe_images,omitempty" gorm:"foreignKey:CafeID"`
}

func (CafeWithDetails) TableName() string {
	return "cafes"
}
