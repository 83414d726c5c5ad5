package images

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/storage/gcs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MaxUploadCount caps the number of images per target, counting both the
// existing images and the incoming batch.
const MaxUploadCount = 10

var allowedMimeTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// UploadedFile is one multipart file handed to the sequence manager.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// ImageRecord echoes one persisted image back to the caller.
type ImageRecord struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
}

type objectStorage interface {
	UploadObject(ctx context.Context, key, contentType string, payload []byte) (*gcs.UploadResult, error)
	DeleteObject(ctx context.Context, key string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Manager preserves the dense 1..N ordering of images per target across
// append, remove, and bulk-remove, coordinating the relational rows with the
// object-storage side effect.
type Manager struct {
	tx      txRunner
	repo    Repository
	storage objectStorage
}

// NewManager builds the image sequence manager.
func NewManager(tx txRunner, repo Repository, storage objectStorage) (*Manager, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("image repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("object storage required")
	}
	return &Manager{tx: tx, repo: repo, storage: storage}, nil
}

// Append validates the batch, uploads every file, and persists one row per
// upload at positions max+1..max+k, preserving the input order. Both checks
// run before any upload or write, so a rejected batch has zero side effects.
// Rows are written through the caller's transaction; a failed insert rolls the
// rows back but does not compensate uploads already made.
func (m *Manager) Append(ctx context.Context, tx *gorm.DB, targetType enums.ImageTargetType, targetNo int64, files []UploadedFile) ([]ImageRecord, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image file is required")
	}

	repo := m.repo.WithTx(tx)

	maxOrder, err := repo.MaxOrder(ctx, targetType, targetNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read current image order")
	}

	if maxOrder+len(files) > MaxUploadCount {
		return nil, pkgerrors.New(pkgerrors.CodeLimitExceeded,
			fmt.Sprintf("a target can hold at most %d images", MaxUploadCount)).
			WithDetails(map[string]any{
				"existing": maxOrder,
				"batch":    len(files),
				"max":      MaxUploadCount,
			})
	}

	for _, file := range files {
		if !isAllowedMime(file.MimeType) {
			return nil, pkgerrors.New(pkgerrors.CodeUnsupportedMedia,
				"only jpg, jpeg, and png files can be uploaded").
				WithDetails(map[string]any{"file": file.Name, "mimeType": file.MimeType})
		}
	}

	uploads := make([]*gcs.UploadResult, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		group.Go(func() error {
			result, err := m.storage.UploadObject(groupCtx, objectKey(targetType, targetNo, file.Name), file.MimeType, file.Data)
			if err != nil {
				return err
			}
			uploads[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upload images")
	}

	records := make([]ImageRecord, 0, len(uploads))
	for i, upload := range uploads {
		order := maxOrder + i + 1
		row := &models.Image{
			PublicID:        upload.PublicID,
			URL:             upload.URL,
			Name:            upload.Name,
			ImageTargetType: targetType,
			ImageTargetNo:   targetNo,
			Order:           order,
		}
		if err := repo.Create(ctx, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist image row")
		}
		records = append(records, ImageRecord{
			PublicID: upload.PublicID,
			URL:      upload.URL,
			Name:     upload.Name,
			Order:    order,
		})
	}

	return records, nil
}

// Remove deletes one image scoped to its target and closes the resulting gap
// by shifting every higher position down. The row delete and the reindex run
// in one transaction; the remote delete precedes them so a storage failure
// leaves both stores untouched.
func (m *Manager) Remove(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "publicId is required")
	}

	return m.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := m.repo.WithTx(tx)

		image, err := repo.FindByTargetAndPublicID(ctx, targetType, targetNo, publicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "image not found for target")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find image")
		}

		if err := m.storage.DeleteObject(ctx, image.PublicID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete remote object")
		}

		if err := repo.DeleteByNo(ctx, image.No); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete image row")
		}

		if err := repo.ShiftDown(ctx, targetType, targetNo, image.Order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reindex remaining images")
		}

		return nil
	})
}

// RemoveAll deletes the remote objects and rows for every public id with no
// reindexing; it is used when the owning entity disappears and the whole
// group goes with it. Runs inside the caller's transaction.
func (m *Manager) RemoveAll(ctx context.Context, tx *gorm.DB, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}

	for _, publicID := range publicIDs {
		if err := m.storage.DeleteObject(ctx, publicID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete remote object")
		}
	}

	if err := m.repo.WithTx(tx).DeleteByPublicIDs(ctx, publicIDs); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete image rows")
	}
	return nil
}

func isAllowedMime(mimeType string) bool {
	for _, allowed := range allowedMimeTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

func objectKey(targetType enums.ImageTargetType, targetNo int64, fileName string) string {
	clean := strings.Trim(strings.ReplaceAll(strings.TrimSpace(fileName), "/", "-"), "-.")
	if clean == "" {
		clean = "image"
	}
	return fmt.Sprintf("images/%s/%d/%s-%s", targetType, targetNo, uuid.NewString(), clean)
}
