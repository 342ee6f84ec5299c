package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/storage"
)

func TestUploadStoresObjectThenRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())

	img, err := env.repos.Images.Upload(ctx, cafe.ID, "front.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg", true)
	require.NoError(t, err)
	require.NotNil(t, img)

	require.Len(t, env.objects.uploaded, 1)
	key := env.objects.uploaded[0]
	assert.True(t, strings.HasPrefix(key, cafe.ID.String()+"/"), "object key is namespaced by cafe")
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	assert.Contains(t, img.ImageURL, storage.PathMarker)
	assert.True(t, img.IsPrimary)

	got, err := env.repos.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, img.ImageURL, got.ImageURL)
}

func TestUploadStorageFailureSkipsRow(t *testing.T) {
	env := newTestEnv(t)
	env.objects.uploadErr = errors.New("bucket unavailable")

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())

	_, err := env.repos.Images.Upload(context.Background(), cafe.ID, "front.jpg", strings.NewReader("x"), "image/jpeg", false)
	require.Error(t, err)

	var count int64
	env.db.Model(&models.CafeImage{}).Count(&count)
	assert.Equal(t, int64(0), count, "no row without a stored object")
}

func TestDeleteRemovesObjectAndRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	img := &models.CafeImage{CafeID: cafe.ID, ImageURL: "https://img.test" + storage.PathMarker + "abc/1_x.jpg"}
	require.NoError(t, env.db.Create(img).Error)

	require.NoError(t, env.repos.Images.Delete(ctx, img.ID, cafe.ID, img.ImageURL))

	assert.Equal(t, []string{"abc/1_x.jpg"}, env.objects.removed)

	got, err := env.repos.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteWithoutMarkerSkipsStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	// An externally hosted image never went through the bucket.
	img := &models.CafeImage{CafeID: cafe.ID, ImageURL: "https://elsewhere.example.com/photo.jpg"}
	require.NoError(t, env.db.Create(img).Error)

	require.NoError(t, env.repos.Images.Delete(ctx, img.ID, cafe.ID, img.ImageURL))

	assert.Empty(t, env.objects.removed, "no storage call for an unrecognized URL")

	got, err := env.repos.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "the row is deleted regardless")
}

func TestDeleteStorageFailureStillDeletesRow(t *testing.T) {
	env := newTestEnv(t)
	env.objects.removeErr = errors.New("bucket unavailable")
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	img := &models.CafeImage{CafeID: cafe.ID, ImageURL: "https://img.test" + storage.PathMarker + "abc/1_x.jpg"}
	require.NoError(t, env.db.Create(img).Error)

	require.NoError(t, env.repos.Images.Delete(ctx, img.ID, cafe.ID, img.ImageURL))

	got, err := env.repos.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "storage failure must not block the row delete")
}

func TestGetMissingImageIsNil(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.repos.Images.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
