package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/storage"
)

// ImageRepository handles cafe image upload and deletion. Both are two-step,
// non-atomic operations against object storage and the database.
type ImageRepository struct {
	db      *gorm.DB
	bus     *cache.Bus
	m       *metrics.Metrics
	objects storage.ObjectStore
}

// Get returns one image row, or (nil, nil) when no row matches.
func (r *ImageRepository) Get(ctx context.Context, id uuid.UUID) (*models.CafeImage, error) {
	var img models.CafeImage
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}

// Upload puts the file into the bucket under <cafe_id>/<timestamp>_<uuid><ext>,
// then inserts the image row with the object's public URL. A row insert
// failure leaves the object behind; there is no compensating delete.
func (r *ImageRepository) Upload(ctx context.Context, cafeID uuid.UUID, fileName string, body io.Reader, contentType string, isPrimary bool) (*models.CafeImage, error) {
	defer observe(r.m, "images.upload")()

	ext := filepath.Ext(fileName)
	key := fmt.Sprintf("%s/%d_%s%s", cafeID, time.Now().Unix(), uuid.New().String(), ext)

	if err := r.objects.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img := &models.CafeImage{
		CafeID:    cafeID,
		ImageURL:  r.objects.PublicURL(key),
		IsPrimary: isPrimary,
	}
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return nil, fmt.Errorf("insert image row: %w", err)
	}

	r.bus.Publish(cache.EventImageUploaded, cache.Payload{CafeID: cafeID.String()})
	return img, nil
}

// Delete removes the backing object, then the row. Storage removal is
// best-effort: a failure is logged and never blocks the row delete, and a
// URL without the bucket path marker skips removal silently.
func (r *ImageRepository) Delete(ctx context.Context, id, cafeID uuid.UUID, imageURL string) error {
	defer observe(r.m, "images.delete")()

	if key, ok := storage.KeyFromURL(imageURL); ok {
		if err := r.objects.Remove(ctx, key); err != nil {
			log.Printf("storage removal failed for %s: %v", key, err)
		}
	}

	if err := r.db.WithContext(ctx).Delete(&models.CafeImage{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete image row: %w", err)
	}

	r.bus.Publish(cache.EventImageDeleted, cache.Payload{CafeID: cafeID.String()})
	return nil
}
