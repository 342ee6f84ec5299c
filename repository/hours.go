package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/models"
)

// HoursRepository upserts operating hours keyed by (cafe, day-of-week).
type HoursRepository struct {
	db  *gorm.DB
	bus *cache.Bus
	m   *metrics.Metrics
}

// Upsert inserts or updates the hours row for (cafe_id, day_of_week) and
// returns the persisted row.
func (r *HoursRepository) Upsert(ctx context.Context, hours *models.OperatingHours) (*models.OperatingHours, error) {
	defer observe(r.m, "hours.upsert")()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cafe_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "is_closed"}),
	}).Create(hours).Error
	if err != nil {
		return nil, fmt.Errorf("upsert hours: %w", err)
	}

	// Re-read by the conflict key: on update the existing row keeps its id.
	var out models.OperatingHours
	err = r.db.WithContext(ctx).
		First(&out, "cafe_id = ? AND day_of_week = ?", hours.CafeID, hours.DayOfWeek).Error
	if err != nil {
		return nil, fmt.Errorf("upsert hours: %w", err)
	}

	r.bus.Publish(cache.EventHoursUpserted, cache.Payload{CafeID: hours.CafeID.String()})
	return &out, nil
}
