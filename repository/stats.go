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

// statsSampleLimit bounds the rows fetched for the client-side aggregate.
// When the directory outgrows the bound, total reviews and average rating
// are computed over a strict subset and become approximate. A server-side
// aggregate would make them exact; until then the bound is part of the
// contract.
const statsSampleLimit = 2500

// TopCafe is one row of the trending list.
type TopCafe struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
}

// DashboardStats is the directory-wide summary. SampleSize reports how many
// rows the aggregate was computed over; when it is below TotalCafes the
// totals are approximate.
type DashboardStats struct {
	TotalCafes   int64     `json:"total_cafes"`
	TotalReviews int64     `json:"total_reviews"`
	AvgRating    float64   `json:"avg_rating"`
	SampleSize   int       `json:"sample_size"`
	TopCafes     []TopCafe `json:"top_cafes"`
}

// StatsRepository computes dashboard statistics without a dedicated
// aggregation endpoint.
type StatsRepository struct {
	db    *gorm.DB
	cache *cache.Store
	m     *metrics.Metrics

	// SampleLimit defaults to statsSampleLimit.
	SampleLimit int
}

// Dashboard returns the cafe count (exact), total reviews and mean rating
// over a bounded sample, and the top five cafes by review count.
func (r *StatsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	key := cache.NewKey(cache.KindDashboard)
	if v, ok := r.cache.Get(key); ok {
		return v.(*DashboardStats), nil
	}
	defer observe(r.m, "stats.dashboard")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Cafe{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count cafes: %w", err)
	}

	var sample []struct {
		Rating      float64
		ReviewCount int
	}
	err := r.db.WithContext(ctx).Model(&models.Cafe{}).
		Select("rating", "review_count").
		Limit(r.SampleLimit).
		Find(&sample).Error
	if err != nil {
		return nil, fmt.Errorf("sample cafes: %w", err)
	}

	stats := &DashboardStats{
		TotalCafes: total,
		SampleSize: len(sample),
	}
	var ratingSum float64
	for _, row := range sample {
		stats.TotalReviews += int64(row.ReviewCount)
		ratingSum += row.Rating
	}
	if len(sample) > 0 {
		stats.AvgRating = ratingSum / float64(len(sample))
	}

	err = r.db.WithContext(ctx).Model(&models.Cafe{}).
		Select("id", "name", "rating", "review_count").
		Order("review_count DESC").
		Limit(5).
		Find(&stats.TopCafes).Error
	if err != nil {
		return nil, fmt.Errorf("top cafes: %w", err)
	}

	r.cache.Put(key, stats)
	return stats, nil
}
