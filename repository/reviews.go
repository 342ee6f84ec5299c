package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/models"
)

// ReviewRepository creates reviews and maintains the denormalized rating and
// review_count aggregates on the cafe row. Review creation invalidates both
// the single-cafe cache and the list cache, since list rows expose the
// aggregates.
type ReviewRepository struct {
	db  *gorm.DB
	bus *cache.Bus
	m   *metrics.Metrics
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	defer observe(r.m, "reviews.create")()

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	if err := r.refreshAggregates(ctx, review.CafeID); err != nil {
		return err
	}
	r.bus.Publish(cache.EventReviewCreated, cache.Payload{CafeID: review.CafeID.String()})
	return nil
}

func (r *ReviewRepository) refreshAggregates(ctx context.Context, cafeID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.Cafe{}).Where("id = ?", cafeID).
		Updates(map[string]any{
			"review_count": gorm.Expr("(SELECT COUNT(*) FROM reviews WHERE reviews.cafe_id = cafes.id)"),
			"rating":       gorm.Expr("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.cafe_id = cafes.id)"),
		}).Error
	if err != nil {
		return fmt.Errorf("refresh cafe aggregates: %w", err)
	}
	return nil
}
