package images

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/storage/gcs"
)

func newTestManager(t *testing.T, repo Repository, storage objectStorage) *Manager {
	t.Helper()

	manager, err := NewManager(stubTxRunner{}, repo, storage)
	require.NoError(t, err)
	return manager
}

func pngFiles(count int) []UploadedFile {
	files := make([]UploadedFile, 0, count)
	for i := 0; i < count; i++ {
		files = append(files, UploadedFile{
			Name:     fmt.Sprintf("photo-%d.png", i+1),
			MimeType: "image/png",
			Data:     []byte{0x89, 0x50},
		})
	}
	return files
}

func TestAppendAssignsSequentialPositions(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{maxOrder: 2}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	records, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 5, pngFiles(3))
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, record := range records {
		assert.Equal(t, 3+i, record.Order)
		assert.NotEmpty(t, record.PublicID)
		assert.NotEmpty(t, record.URL)
	}

	require.Len(t, repo.created, 3)
	for i, row := range repo.created {
		assert.Equal(t, 3+i, row.Order)
		assert.Equal(t, enums.ImageTargetTypeBread, row.ImageTargetType)
		assert.Equal(t, int64(5), row.ImageTargetNo)
	}
	assert.Equal(t, 3, storage.uploadCount())
}

func TestAppendPreservesBatchOrder(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	files := pngFiles(4)
	records, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 1, files)
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, record := range records {
		assert.True(t, strings.HasSuffix(record.PublicID, files[i].Name),
			"position %d must hold the file submitted at position %d", i+1, i+1)
		assert.Equal(t, i+1, record.Order)
	}
}

func TestAppendRejectsEmptyBatch(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	_, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 1, nil)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Zero(t, storage.uploadCount())
}

func TestAppendRejectsBatchOverLimit(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{maxOrder: 8}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	_, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 1, pngFiles(3))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeLimitExceeded, typed.Code())

	assert.Zero(t, storage.uploadCount(), "a rejected batch must not touch storage")
	assert.Empty(t, repo.created)
}

func TestAppendAllowsBatchExactlyAtLimit(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{maxOrder: 7}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	records, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 1, pngFiles(3))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, MaxUploadCount, records[2].Order)
}

func TestAppendRejectsUnsupportedMime(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	files := pngFiles(2)
	files[1] = UploadedFile{Name: "notes.pdf", MimeType: "application/pdf", Data: []byte("%PDF")}

	_, err := manager.Append(context.Background(), nil, enums.ImageTargetTypeBread, 1, files)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnsupportedMedia, typed.Code())

	assert.Zero(t, storage.uploadCount(), "no file may upload when any file in the batch is rejected")
	assert.Empty(t, repo.created)
}

func TestRemoveDeletesAndReindexes(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{
		byPublicID: map[string]*models.Image{
			"img-b": {No: 2, PublicID: "img-b", Order: 2, ImageTargetType: enums.ImageTargetTypeBread, ImageTargetNo: 1},
		},
	}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	err := manager.Remove(context.Background(), enums.ImageTargetTypeBread, 1, "img-b")
	require.NoError(t, err)

	assert.Equal(t, []string{"img-b"}, storage.deletedKeys())
	assert.Equal(t, []int64{2}, repo.deletedNos)
	require.Len(t, repo.shiftCalls, 1)
	assert.Equal(t, 2, repo.shiftCalls[0])
}

func TestRemoveUnknownImageIsNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	err := manager.Remove(context.Background(), enums.ImageTargetTypeBread, 1, "missing")
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Empty(t, storage.deletedKeys())
}

func TestRemoveKeepsRowWhenStorageFails(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{
		byPublicID: map[string]*models.Image{
			"img-a": {No: 1, PublicID: "img-a", Order: 1, ImageTargetType: enums.ImageTargetTypeBread, ImageTargetNo: 1},
		},
	}
	storage := &stubStorage{deleteErr: fmt.Errorf("storage down")}
	manager := newTestManager(t, repo, storage)

	err := manager.Remove(context.Background(), enums.ImageTargetTypeBread, 1, "img-a")
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())

	assert.Empty(t, repo.deletedNos)
	assert.Empty(t, repo.shiftCalls)
}

func TestRemoveAllSkipsReindex(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	err := manager.RemoveAll(context.Background(), nil, []string{"img-a", "img-b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"img-a", "img-b"}, storage.deletedKeys())
	assert.Equal(t, []string{"img-a", "img-b"}, repo.deletedPublicIDs)
	assert.Empty(t, repo.shiftCalls)
}

func TestRemoveAllWithNoIDsIsNoop(t *testing.T) {
	t.Parallel()

	repo := &stubImageRepo{}
	storage := &stubStorage{}
	manager := newTestManager(t, repo, storage)

	require.NoError(t, manager.RemoveAll(context.Background(), nil, nil))
	assert.Empty(t, storage.deletedKeys())
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubImageRepo struct {
	maxOrder   int
	byPublicID map[string]*models.Image

	created          []*models.Image
	deletedNos       []int64
	deletedPublicIDs []string
	shiftCalls       []int
}

func (s *stubImageRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubImageRepo) MaxOrder(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) (int, error) {
	return s.maxOrder, nil
}

func (s *stubImageRepo) Create(ctx context.Context, image *models.Image) error {
	s.created = append(s.created, image)
	return nil
}

func (s *stubImageRepo) FindByTarget(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) ([]models.Image, error) {
	return nil, nil
}

func (s *stubImageRepo) FindByTargetAndPublicID(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, publicID string) (*models.Image, error) {
	if image, ok := s.byPublicID[publicID]; ok {
		return image, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubImageRepo) FirstImageURLs(ctx context.Context, targetType enums.ImageTargetType) (map[int64]string, error) {
	return nil, nil
}

func (s *stubImageRepo) PublicIDsByTargets(ctx context.Context, targetType enums.ImageTargetType, targetNos []int64) ([]string, error) {
	return nil, nil
}

func (s *stubImageRepo) DeleteByNo(ctx context.Context, no int64) error {
	s.deletedNos = append(s.deletedNos, no)
	return nil
}

func (s *stubImageRepo) DeleteByPublicIDs(ctx context.Context, publicIDs []string) error {
	s.deletedPublicIDs = append(s.deletedPublicIDs, publicIDs...)
	return nil
}

func (s *stubImageRepo) ShiftDown(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, above int) error {
	s.shiftCalls = append(s.shiftCalls, above)
	return nil
}

// stubStorage is hit concurrently by the upload goroutines, so every
// access goes through the mutex.
type stubStorage struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	deleteErr error
}

func (s *stubStorage) UploadObject(ctx context.Context, key, contentType string, payload []byte) (*gcs.UploadResult, error) {
	s.mu.Lock()
	s.uploads++
	s.mu.Unlock()
	return &gcs.UploadResult{
		PublicID: key,
		URL:      "https://storage.example.com/" + key,
		Name:     key,
	}, nil
}

func (s *stubStorage) DeleteObject(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubStorage) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

func (s *stubStorage) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
