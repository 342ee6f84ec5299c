package repository

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/storage"
)

// fakeObjectStore records bucket calls instead of talking to R2.
type fakeObjectStore struct {
	uploaded  []string
	removed   []string
	uploadErr error
	removeErr error
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, _ io.Reader, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://img.test" + storage.PathMarker + key
}

func (f *fakeObjectStore) Remove(_ context.Context, keys ...string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, keys...)
	return nil
}

type testEnv struct {
	repos   *Repositories
	db      *gorm.DB
	store   *cache.Store
	objects *fakeObjectStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Cafe{},
		&models.OperatingHours{},
		&models.CafeMenu{},
		&models.Review{},
		&models.CafeImage{},
	))

	store := cache.New(time.Minute, nil)
	objects := &fakeObjectStore{}
	repos := New(db, store, cache.NewBus(), objects, nil)

	return &testEnv{repos: repos, db: db, store: store, objects: objects}
}

// seedCafe inserts a cafe with a distinct creation instant so list ordering
// is deterministic under test.
func (e *testEnv) seedCafe(t *testing.T, name, address string, createdAt time.Time) *models.Cafe {
	t.Helper()
	cafe := &models.Cafe{Name: name, Address: address, IsActive: true, CreatedAt: createdAt}
	require.NoError(t, e.db.Create(cafe).Error)
	return cafe
}

func (e *testEnv) seedUser(t *testing.T, email, fullName string) *models.User {
	t.Helper()
	role := models.Role{Name: models.RoleUser}
	require.NoError(t, e.db.Where(models.Role{Name: models.RoleUser}).FirstOrCreate(&role).Error)
	user := &models.User{Email: email, FullName: fullName, Provider: "email", RoleID: role.ID}
	require.NoError(t, e.db.Create(user).Error)
	return user
}
