package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperatingHours struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CafeID    uuid.UUID `json:"cafe_id" gorm:"type:uuid;not null;uniqueIndex:idx_cafe_day"`
	DayOfWeek int       `json:"day_of_week" gorm:"not null;uniqueIndex:idx_cafe_day;check:day_of_week between 0 and 6"` // 0=Sunday, 6=Saturday
	OpenTime  *string   `json:"open_time"`
	CloseTime *string   `json:"close_time"`
	IsClosed  bool      `json:"is_closed" gorm:"default:false"`
}

func (o *OperatingHours) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (OperatingHours) TableName() string {
	return "operating_hours"
}
