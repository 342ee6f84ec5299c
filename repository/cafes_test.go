package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cafein/api-go/models"
)

func TestCafeModelsShareOneTable(t *testing.T) {
	env := newTestEnv(t)

	// The write model and the read projection must resolve to the same
	// table, or migration and reads diverge on a fresh database.
	assert.Equal(t, models.Cafe{}.TableName(), models.CafeWithDetails{}.TableName())

	env.seedCafe(t, "Cafe", "Addr", time.Now())

	var viaRead int64
	require.NoError(t, env.db.Model(&models.CafeWithDetails{}).Count(&viaRead).Error)
	assert.Equal(t, int64(1), viaRead)
}

func TestListSearchMatchesEveryWord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	env.seedCafe(t, "Kopi Susu Bahagia", "Jl. Sudirman 1", base)
	env.seedCafe(t, "Warung Kopi", "Gang Susu 4", base.Add(time.Minute))
	env.seedCafe(t, "Susu Corner", "Jl. Thamrin 9", base.Add(2*time.Minute))
	env.seedCafe(t, "Teh House", "Kopi Street 2", base.Add(3*time.Minute))

	res, err := env.repos.Cafes.List(ctx, 0, 20, "kopi susu", false)
	require.NoError(t, err)

	// Both words must match, each against name or address.
	require.Len(t, res.Cafes, 2)
	assert.Equal(t, int64(2), res.TotalCount)
	names := []string{res.Cafes[0].Name, res.Cafes[1].Name}
	assert.ElementsMatch(t, []string{"Kopi Susu Bahagia", "Warung Kopi"}, names)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedCafe(t, "KOPI KENANGAN", "Jakarta", time.Now())

	res, err := env.repos.Cafes.List(ctx, 0, 20, "kopi", false)
	require.NoError(t, err)
	require.Len(t, res.Cafes, 1)

	res, err = env.repos.Cafes.List(ctx, 0, 20, "   ", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalCount, "whitespace-only search means no filter")
}

func TestListTotalCountIndependentOfPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		env.seedCafe(t, "Cafe", "Addr", base.Add(time.Duration(i)*time.Minute))
	}

	sizes := []int{2, 2, 1, 0}
	for page, want := range sizes {
		res, err := env.repos.Cafes.List(ctx, page, 2, "", false)
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.TotalCount, "page %d", page)
		assert.Len(t, res.Cafes, want, "page %d", page)
	}
}

func TestListOrderAndIdempotence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	oldest := env.seedCafe(t, "Oldest", "Addr", base)
	middle := env.seedCafe(t, "Middle", "Addr", base.Add(time.Minute))
	newest := env.seedCafe(t, "Newest", "Addr", base.Add(2*time.Minute))

	ids := func(res *CafeListResult) []uuid.UUID {
		out := make([]uuid.UUID, len(res.Cafes))
		for i, c := range res.Cafes {
			out[i] = c.ID
		}
		return out
	}

	first, err := env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, ids(first), "newest first")

	second, err := env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, ids(first), ids(second))
}

func TestListMergesImages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	withImg := env.seedCafe(t, "Pictured", "Addr", base)
	without := env.seedCafe(t, "Bare", "Addr", base.Add(time.Minute))
	require.NoError(t, env.db.Create(&models.CafeImage{CafeID: withImg.ID, ImageURL: "https://img.test/cafe-images/a.jpg", IsPrimary: true}).Error)
	require.NoError(t, env.db.Create(&models.CafeImage{CafeID: withImg.ID, ImageURL: "https://img.test/cafe-images/b.jpg"}).Error)

	res, err := env.repos.Cafes.List(ctx, 0, 20, "", true)
	require.NoError(t, err)
	require.Len(t, res.Cafes, 2)

	byID := map[uuid.UUID][]models.CafeImage{}
	for _, c := range res.Cafes {
		byID[c.ID] = c.Images
	}
	assert.Len(t, byID[withImg.ID], 2)
	assert.Empty(t, byID[without.ID])

	// Without the flag, no image query runs and the slice stays empty.
	res, err = env.repos.Cafes.List(ctx, 0, 20, "images-off", false)
	require.NoError(t, err)
	assert.Empty(t, res.Cafes)
}

func TestGetWithDetailsMissingIsNil(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe, err := env.repos.Cafes.GetWithDetails(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cafe)

	// The absence itself is cached; a second read behaves the same.
	cafe, err = env.repos.Cafes.GetWithDetails(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cafe)
}

func TestGetReflectsUpdateImmediately(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Before", "Addr", time.Now())

	got, err := env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Before", got.Name)

	_, err = env.repos.Cafes.Update(ctx, cafe.ID, map[string]any{"name": "After"})
	require.NoError(t, err)

	got, err = env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "After", got.Name, "read after update must not serve the stale cache entry")
}

func TestUpdateMissingCafe(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.repos.Cafes.Update(context.Background(), uuid.New(), map[string]any{"name": "x"})
	assert.Error(t, err)
}

func TestDeleteInvalidatesList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Doomed", "Addr", time.Now())

	res, err := env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.TotalCount)

	require.NoError(t, env.repos.Cafes.Delete(ctx, cafe.ID))

	res, err = env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.TotalCount)
}

func TestMenuCreateThenReadIncludesItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())

	// Prime the single-cafe cache before the menu write.
	got, err := env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.Empty(t, got.Menus)

	menu := &models.CafeMenu{CafeID: cafe.ID, Name: "Es Kopi Susu", Price: 24000, Category: models.MenuCategoryCoffee, IsAvailable: true}
	require.NoError(t, env.repos.Menus.Create(ctx, menu))

	got, err = env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.Len(t, got.Menus, 1)
	assert.Equal(t, "Es Kopi Susu", got.Menus[0].Name)
}

func TestMenuDeleteScopedToOwningCafe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedCafe(t, "Owner", "Addr", time.Now())
	menu := &models.CafeMenu{CafeID: owner.ID, Name: "Es Kopi", Price: 20000, Category: models.MenuCategoryCoffee, IsAvailable: true}
	require.NoError(t, env.repos.Menus.Create(ctx, menu))

	// Prime the owner's detail cache with the menu present.
	got, err := env.repos.Cafes.GetWithDetails(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Menus, 1)

	// A delete addressed to the wrong cafe is rejected and touches nothing.
	err = env.repos.Menus.Delete(ctx, menu.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	env.db.Model(&models.CafeMenu{}).Where("id = ?", menu.ID).Count(&count)
	assert.Equal(t, int64(1), count, "mismatched cafe must not delete the row")

	// The real owner's delete goes through and its cache re-fetches.
	require.NoError(t, env.repos.Menus.Delete(ctx, menu.ID, owner.ID))

	got, err = env.repos.Cafes.GetWithDetails(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Menus)
}

func TestHoursUpsertKeyedByCafeAndDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	open, close9, close10 := "08:00", "21:00", "22:00"

	first, err := env.repos.Hours.Upsert(ctx, &models.OperatingHours{CafeID: cafe.ID, DayOfWeek: 1, OpenTime: &open, CloseTime: &close9})
	require.NoError(t, err)

	second, err := env.repos.Hours.Upsert(ctx, &models.OperatingHours{CafeID: cafe.ID, DayOfWeek: 1, OpenTime: &open, CloseTime: &close10})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (cafe, day) updates in place")
	require.NotNil(t, second.CloseTime)
	assert.Equal(t, close10, *second.CloseTime)

	var count int64
	env.db.Model(&models.OperatingHours{}).Where("cafe_id = ?", cafe.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHoursOrderedMondayFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	for _, day := range []int{0, 6, 1} { // Sunday, Saturday, Monday
		_, err := env.repos.Hours.Upsert(ctx, &models.OperatingHours{CafeID: cafe.ID, DayOfWeek: day, IsClosed: day == 0})
		require.NoError(t, err)
	}

	got, err := env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.Len(t, got.OperatingHours, 3)

	days := []int{got.OperatingHours[0].DayOfWeek, got.OperatingHours[1].DayOfWeek, got.OperatingHours[2].DayOfWeek}
	assert.Equal(t, []int{1, 6, 0}, days, "Monday first, Sunday last")
}

func TestReviewUpdatesAggregatesAndMergesProfiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())
	author := env.seedUser(t, "reviewer@example.com", "Rina")

	comment := "mantap"
	require.NoError(t, env.repos.Reviews.Create(ctx, &models.Review{CafeID: cafe.ID, UserID: &author.ID, Rating: 5, Comment: &comment}))
	require.NoError(t, env.repos.Reviews.Create(ctx, &models.Review{CafeID: cafe.ID, Rating: 4, IsAdminCreated: true}))

	got, err := env.repos.Cafes.GetWithDetails(ctx, cafe.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 2, got.ReviewCount)
	assert.InDelta(t, 4.5, got.Rating, 0.001)

	require.Len(t, got.Reviews, 2)
	for _, rev := range got.Reviews {
		if rev.UserID != nil {
			require.NotNil(t, rev.Profile, "attributed review carries the author profile")
			assert.Equal(t, "Rina", rev.Profile.FullName)
		} else {
			assert.Nil(t, rev.Profile, "unattributed review keeps no profile")
		}
	}
}

func TestReviewInvalidatesListAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cafe := env.seedCafe(t, "Cafe", "Addr", time.Now())

	res, err := env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	require.Equal(t, 0, res.Cafes[0].ReviewCount)

	require.NoError(t, env.repos.Reviews.Create(ctx, &models.Review{CafeID: cafe.ID, Rating: 3, IsAdminCreated: true}))

	res, err = env.repos.Cafes.List(ctx, 0, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cafes[0].ReviewCount, "list rows expose the refreshed aggregate")
}
