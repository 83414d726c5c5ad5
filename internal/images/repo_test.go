package images

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

func setupImagesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Image{}))
	return db
}

func seedImages(t *testing.T, db *gorm.DB, targetNo int64, count int) []models.Image {
	t.Helper()

	rows := make([]models.Image, 0, count)
	for i := 1; i <= count; i++ {
		row := models.Image{
			PublicID:        fmt.Sprintf("img-%d-%d", targetNo, i),
			URL:             fmt.Sprintf("https://storage.example.com/img-%d-%d", targetNo, i),
			Name:            fmt.Sprintf("photo-%d.png", i),
			ImageTargetType: enums.ImageTargetTypeBread,
			ImageTargetNo:   targetNo,
			Order:           i,
		}
		require.NoError(t, db.Create(&row).Error)
		rows = append(rows, row)
	}
	return rows
}

func TestMaxOrderEmptyTarget(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)

	max, err := repo.MaxOrder(context.Background(), enums.ImageTargetTypeBread, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, max)
}

func TestMaxOrderCountsOnlyOwnTarget(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)

	seedImages(t, db, 1, 4)
	seedImages(t, db, 2, 2)

	max, err := repo.MaxOrder(context.Background(), enums.ImageTargetTypeBread, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, max)
}

func TestUniqueIndexRejectsDuplicatePosition(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	seedImages(t, db, 1, 1)

	dup := models.Image{
		PublicID:        "img-dup",
		URL:             "https://storage.example.com/img-dup",
		Name:            "dup.png",
		ImageTargetType: enums.ImageTargetTypeBread,
		ImageTargetNo:   1,
		Order:           1,
	}
	err := db.Create(&dup).Error
	require.Error(t, err)
}

func TestShiftDownRestoresDenseOrdering(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	rows := seedImages(t, db, 1, 5)

	// remove position 2, then close the gap
	require.NoError(t, repo.DeleteByNo(context.Background(), rows[1].No))
	require.NoError(t, repo.ShiftDown(context.Background(), enums.ImageTargetTypeBread, 1, 2))

	remaining, err := repo.FindByTarget(context.Background(), enums.ImageTargetTypeBread, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 4)

	for i, row := range remaining {
		assert.Equal(t, i+1, row.Order)
	}
	assert.Equal(t, "img-1-1", remaining[0].PublicID)
	assert.Equal(t, "img-1-3", remaining[1].PublicID)
	assert.Equal(t, "img-1-5", remaining[3].PublicID)
}

func TestShiftDownAfterLastPositionIsNoop(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	rows := seedImages(t, db, 1, 3)

	require.NoError(t, repo.DeleteByNo(context.Background(), rows[2].No))
	require.NoError(t, repo.ShiftDown(context.Background(), enums.ImageTargetTypeBread, 1, 3))

	remaining, err := repo.FindByTarget(context.Background(), enums.ImageTargetTypeBread, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].Order)
	assert.Equal(t, 2, remaining[1].Order)
}

func TestShiftDownLeavesOtherTargetsAlone(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	rows := seedImages(t, db, 1, 3)
	seedImages(t, db, 2, 3)

	require.NoError(t, repo.DeleteByNo(context.Background(), rows[0].No))
	require.NoError(t, repo.ShiftDown(context.Background(), enums.ImageTargetTypeBread, 1, 1))

	other, err := repo.FindByTarget(context.Background(), enums.ImageTargetTypeBread, 2)
	require.NoError(t, err)
	require.Len(t, other, 3)
	for i, row := range other {
		assert.Equal(t, i+1, row.Order)
	}
}

func TestFirstImageURLs(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	seedImages(t, db, 1, 3)
	seedImages(t, db, 2, 1)

	urls, err := repo.FirstImageURLs(context.Background(), enums.ImageTargetTypeBread)
	require.NoError(t, err)

	require.Len(t, urls, 2)
	assert.Equal(t, "https://storage.example.com/img-1-1", urls[1])
	assert.Equal(t, "https://storage.example.com/img-2-1", urls[2])
}

func TestPublicIDsByTargets(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	seedImages(t, db, 1, 2)
	seedImages(t, db, 2, 1)
	seedImages(t, db, 3, 1)

	ids, err := repo.PublicIDsByTargets(context.Background(), enums.ImageTargetTypeBread, []int64{1, 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"img-1-1", "img-1-2", "img-3-1"}, ids)

	none, err := repo.PublicIDsByTargets(context.Background(), enums.ImageTargetTypeBread, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByTargetAndPublicIDScopedToTarget(t *testing.T) {
	t.Parallel()

	db := setupImagesTestDB(t)
	repo := NewRepository(db)
	seedImages(t, db, 1, 1)

	found, err := repo.FindByTargetAndPublicID(context.Background(), enums.ImageTargetTypeBread, 1, "img-1-1")
	require.NoError(t, err)
	assert.Equal(t, "img-1-1", found.PublicID)

	_, err = repo.FindByTargetAndPublicID(context.Background(), enums.ImageTargetTypeBread, 2, "img-1-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
