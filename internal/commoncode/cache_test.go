package commoncode

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

type stubCodesRepo struct {
	rows []models.CommonCode
	err  error
}

func (s *stubCodesRepo) ListAll(ctx context.Context) ([]models.CommonCode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestCacheLooksUpCodeNames(t *testing.T) {
	t.Parallel()

	repo := &stubCodesRepo{rows: []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "On Sale"},
		{GroupName: "order_status", Code: "10", Name: "Received"},
	}}

	cache, err := NewCache(context.Background(), repo)
	require.NoError(t, err)

	assert.Equal(t, "On Sale", cache.Lookup(enums.CodeGroupBreadStatus, "10"))
	assert.Equal(t, "Received", cache.Lookup(enums.CodeGroupOrderStatus, "10"))
}

func TestCacheReturnsPlaceholderForUnknownCode(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(context.Background(), &stubCodesRepo{})
	require.NoError(t, err)

	assert.Equal(t, MissingName, cache.Lookup(enums.CodeGroupBreadStatus, "99"))
	assert.Equal(t, MissingName, cache.Lookup(enums.CodeGroup("nonexistent"), "10"))
}

func TestCacheInitialLoadFailure(t *testing.T) {
	t.Parallel()

	_, err := NewCache(context.Background(), &stubCodesRepo{err: fmt.Errorf("db down")})
	require.Error(t, err)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	t.Parallel()

	repo := &stubCodesRepo{rows: []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "On Sale"},
	}}

	cache, err := NewCache(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, "On Sale", cache.Lookup(enums.CodeGroupBreadStatus, "10"))

	repo.rows = []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "Available"},
		{GroupName: "bread_status", Code: "20", Name: "Sold Out"},
	}
	require.NoError(t, cache.Reload(context.Background()))

	assert.Equal(t, "Available", cache.Lookup(enums.CodeGroupBreadStatus, "10"))
	assert.Equal(t, "Sold Out", cache.Lookup(enums.CodeGroupBreadStatus, "20"))
}

func TestReloadFailureKeepsServingOldSnapshot(t *testing.T) {
	t.Parallel()

	repo := &stubCodesRepo{rows: []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "On Sale"},
	}}

	cache, err := NewCache(context.Background(), repo)
	require.NoError(t, err)

	repo.err = fmt.Errorf("db down")
	require.Error(t, cache.Reload(context.Background()))

	assert.Equal(t, "On Sale", cache.Lookup(enums.CodeGroupBreadStatus, "10"))
}

func TestSnapshotIsImmutableUnderReload(t *testing.T) {
	t.Parallel()

	repo := &stubCodesRepo{rows: []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "On Sale"},
	}}

	cache, err := NewCache(context.Background(), repo)
	require.NoError(t, err)

	before := cache.Current()

	repo.rows = []models.CommonCode{
		{GroupName: "bread_status", Code: "10", Name: "Changed"},
	}
	require.NoError(t, cache.Reload(context.Background()))

	assert.Equal(t, "On Sale", before.Lookup(enums.CodeGroupBreadStatus, "10"),
		"a snapshot taken before reload must keep its values")
	assert.Equal(t, "Changed", cache.Lookup(enums.CodeGroupBreadStatus, "10"))
}
