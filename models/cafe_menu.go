package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuCategory string

const (
	MenuCategoryCoffee    MenuCategory = "coffee"
	MenuCategoryNonCoffee MenuCategory = "non_coffee"
	MenuCategoryFood      MenuCategory = "food"
)

type CafeMenu struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	CafeID      uuid.UUID    `json:"cafe_id" gorm:"type:uuid;not null;index"`
	Name        string       `json:"name" gorm:"not null"`
	Price       float64      `json:"price" gorm:"not null;check:price >= 0"`
	Category    MenuCategory `json:"category" gorm:"not null;type:varchar(20)"`
	Description *string      `json:"description"`
	IsAvailable bool         `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (m *CafeMenu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (CafeMenu) TableName() string {
	return "cafe_menus"
}
