package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/models"
)

// CafeRepository serves the cafe list and single-cafe reads plus cafe CRUD.
type CafeRepository struct {
	db    *gorm.DB
	cache *cache.Store
	bus   *cache.Bus
	m     *metrics.Metrics
}

// CafeListResult is one page of cafes plus the exact total matching the
// filter, independent of the page requested.
type CafeListResult struct {
	Cafes      []models.CafeWithDetails `json:"cafes"`
	TotalCount int64                    `json:"count"`
}

// List returns the requested page of cafes, newest first. A non-empty search
// string is split into words; every word must match name or address
// case-insensitively. The filter is applied before the range so TotalCount
// reflects filtered rows. With withImages, images for the page's cafes are
// fetched in a second query and merged by cafe id.
func (r *CafeRepository) List(ctx context.Context, page, pageSize int, search string, withImages bool) (*CafeListResult, error) {
	key := cache.NewKey(cache.KindCafeList, page, pageSize, search, withImages)
	if v, ok := r.cache.Get(key); ok {
		return v.(*CafeListResult), nil
	}
	defer observe(r.m, "cafes.list")()

	// An all-whitespace search degrades to no filter.
	words := strings.Fields(search)
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.CafeWithDetails{})
		for _, word := range words {
			pat := "%" + strings.ToLower(word) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", pat, pat)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count cafes: %w", err)
	}

	var cafes []models.CafeWithDetails
	err := base().
		Order("created_at DESC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}

	result := &CafeListResult{Cafes: cafes, TotalCount: total}

	// An empty page short-circuits without the image join.
	if withImages && len(cafes) > 0 {
		if err := r.attachImages(ctx, cafes); err != nil {
			return nil, err
		}
	}

	r.cache.Put(key, result)
	return result, nil
}

// attachImages merges images onto the fetched page in one extra query,
// grouped by cafe id. O(n+m) over page rows and their images.
func (r *CafeRepository) attachImages(ctx context.Context, cafes []models.CafeWithDetails) error {
	ids := make([]uuid.UUID, len(cafes))
	for i, c := range cafes {
		ids[i] = c.ID
	}

	var images []models.CafeImage
	if err := r.db.WithContext(ctx).Where("cafe_id IN ?", ids).Find(&images).Error; err != nil {
		return fmt.Errorf("list cafe images: %w", err)
	}

	byCafe := make(map[uuid.UUID][]models.CafeImage, len(cafes))
	for _, img := range images {
		byCafe[img.CafeID] = append(byCafe[img.CafeID], img)
	}
	for i := range cafes {
		cafes[i].Images = byCafe[cafes[i].ID]
	}
	return nil
}

// GetWithDetails returns one cafe with its operating hours, menus, reviews
// and images, plus author profiles merged onto the reviews. A missing id
// yields (nil, nil), not an error.
func (r *CafeRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*models.CafeWithDetails, error) {
	key := cache.NewKey(cache.KindCafe, id)
	if v, ok := r.cache.Get(key); ok {
		return v.(*models.CafeWithDetails), nil
	}
	defer observe(r.m, "cafes.get")()

	var cafe models.CafeWithDetails
	err := r.db.WithContext(ctx).
		Preload("OperatingHours", func(db *gorm.DB) *gorm.DB {
			// Monday first for display, Sunday last.
			return db.Order("(day_of_week + 6) % 7")
		}).
		Preload("Menus").
		Preload("Reviews").
		Preload("Images").
		First(&cafe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.cache.Put(key, (*models.CafeWithDetails)(nil))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cafe: %w", err)
	}

	if err := r.attachProfiles(ctx, cafe.Reviews); err != nil {
		return nil, err
	}

	r.cache.Put(key, &cafe)
	return &cafe, nil
}

// attachProfiles left-joins author profiles onto reviews in one extra query
// for the distinct non-null author ids. Unattributed reviews keep no profile.
func (r *CafeRepository) attachProfiles(ctx context.Context, reviews []models.Review) error {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, rev := range reviews {
		if rev.UserID != nil && !seen[*rev.UserID] {
			seen[*rev.UserID] = true
			ids = append(ids, *rev.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Select("id", "full_name", "avatar_url").
		Where("id IN ?", ids).
		Find(&profiles).Error; err != nil {
		return fmt.Errorf("list review profiles: %w", err)
	}

	byUser := make(map[uuid.UUID]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	for i := range reviews {
		if reviews[i].UserID != nil {
			reviews[i].Profile = byUser[*reviews[i].UserID]
		}
	}
	return nil
}

// Create inserts a cafe and invalidates the list cache.
func (r *CafeRepository) Create(ctx context.Context, cafe *models.Cafe) error {
	defer observe(r.m, "cafes.create")()

	if err := r.db.WithContext(ctx).Create(cafe).Error; err != nil {
		return fmt.Errorf("create cafe: %w", err)
	}
	r.bus.Publish(cache.EventCafeCreated, cache.Payload{CafeID: cafe.ID.String()})
	return nil
}

// Update applies a partial update by id and returns the persisted row.
func (r *CafeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Cafe, error) {
	defer observe(r.m, "cafes.update")()

	res := r.db.WithContext(ctx).Model(&models.Cafe{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update cafe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update cafe: %w", gorm.ErrRecordNotFound)
	}

	var cafe models.Cafe
	if err := r.db.WithContext(ctx).First(&cafe, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update cafe: %w", err)
	}

	r.bus.Publish(cache.EventCafeUpdated, cache.Payload{CafeID: id.String()})
	return &cafe, nil
}

// Delete removes a cafe by id.
func (r *CafeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe(r.m, "cafes.delete")()

	if err := r.db.WithContext(ctx).Delete(&models.Cafe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete cafe: %w", err)
	}
	r.bus.Publish(cache.EventCafeDeleted, cache.Payload{CafeID: id.String()})
	return nil
}
