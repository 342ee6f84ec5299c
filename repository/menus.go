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

// MenuRepository handles menu item CRUD. Every mutation invalidates the
// single-cafe cache for the owning cafe.
type MenuRepository struct {
	db  *gorm.DB
	bus *cache.Bus
	m   *metrics.Metrics
}

func (r *MenuRepository) Create(ctx context.Context, menu *models.CafeMenu) error {
	defer observe(r.m, "menus.create")()

	if err := r.db.WithContext(ctx).Create(menu).Error; err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	r.bus.Publish(cache.EventMenuCreated, cache.Payload{CafeID: menu.CafeID.String()})
	return nil
}

func (r *MenuRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.CafeMenu, error) {
	defer observe(r.m, "menus.update")()

	res := r.db.WithContext(ctx).Model(&models.CafeMenu{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update menu: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update menu: %w", gorm.ErrRecordNotFound)
	}

	var menu models.CafeMenu
	if err := r.db.WithContext(ctx).First(&menu, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update menu: %w", err)
	}

	r.bus.Publish(cache.EventMenuUpdated, cache.Payload{CafeID: menu.CafeID.String()})
	return &menu, nil
}

// Delete removes a menu item. The delete is scoped to the owning cafe so a
// mismatched (menu, cafe) pair is rejected and the invalidation edge only
// fires for the cafe that actually lost the row.
func (r *MenuRepository) Delete(ctx context.Context, id, cafeID uuid.UUID) error {
	defer observe(r.m, "menus.delete")()

	res := r.db.WithContext(ctx).
		Where("id = ? AND cafe_id = ?", id, cafeID).
		Delete(&models.CafeMenu{})
	if res.Error != nil {
		return fmt.Errorf("delete menu: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete menu: %w", gorm.ErrRecordNotFound)
	}
	r.bus.Publish(cache.EventMenuDeleted, cache.Payload{CafeID: cafeID.String()})
	return nil
}
