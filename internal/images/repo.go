package images

import (
	"context"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists image rows and their per-target sequence positions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	MaxOrder(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) (int, error)
	Create(ctx context.Context, image *models.Image) error
	FindByTarget(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) ([]models.Image, error)
	FindByTargetAndPublicID(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, publicID string) (*models.Image, error)
	FirstImageURLs(ctx context.Context, targetType enums.ImageTargetType) (map[int64]string, error)
	PublicIDsByTargets(ctx context.Context, targetType enums.ImageTargetType, targetNos []int64) ([]string, error)
	DeleteByNo(ctx context.Context, no int64) error
	DeleteByPublicIDs(ctx context.Context, publicIDs []string) error
	ShiftDown(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, above int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an image repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// MaxOrder returns the highest sequence position for the target, 0 when the
// target has no images. With the dense-ordering invariant this equals the
// current image count.
func (r *repository) MaxOrder(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Select(`MAX("order")`).
		Where("image_target_type = ? AND image_target_no = ?", targetType, targetNo).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *repository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *repository) FindByTarget(ctx context.Context, targetType enums.ImageTargetType, targetNo int64) ([]models.Image, error) {
	var rows []models.Image
	err := r.db.WithContext(ctx).
		Where("image_target_type = ? AND image_target_no = ?", targetType, targetNo).
		Order(`"order" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByTargetAndPublicID(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, publicID string) (*models.Image, error) {
	var row models.Image
	err := r.db.WithContext(ctx).
		Where("image_target_type = ? AND image_target_no = ? AND public_id = ?", targetType, targetNo, publicID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FirstImageURLs maps target no to the URL of its position-1 image, used for
// list views that show one thumbnail per target.
func (r *repository) FirstImageURLs(ctx context.Context, targetType enums.ImageTargetType) (map[int64]string, error) {
	var rows []models.Image
	err := r.db.WithContext(ctx).
		Where(`image_target_type = ? AND "order" = 1`, targetType).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	urls := make(map[int64]string, len(rows))
	for _, row := range rows {
		urls[row.ImageTargetNo] = row.URL
	}
	return urls, nil
}

func (r *repository) PublicIDsByTargets(ctx context.Context, targetType enums.ImageTargetType, targetNos []int64) ([]string, error) {
	if len(targetNos) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("image_target_type = ? AND image_target_no IN ?", targetType, targetNos).
		Pluck("public_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) DeleteByNo(ctx context.Context, no int64) error {
	return r.db.WithContext(ctx).Where("no = ?", no).Delete(&models.Image{}).Error
}

func (r *repository) DeleteByPublicIDs(ctx context.Context, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("public_id IN ?", publicIDs).
		Delete(&models.Image{}).Error
}

// ShiftDown decrements the position of every row above the given position.
// Rows are updated in ascending order so each decrement moves into a slot the
// previous step (or the delete that precedes this call) already freed, which
// keeps the unique (target type, target no, order) index satisfied mid-flight.
func (r *repository) ShiftDown(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, above int) error {
	var rows []models.Image
	err := r.db.WithContext(ctx).
		Where(`image_target_type = ? AND image_target_no = ? AND "order" > ?`, targetType, targetNo, above).
		Order(`"order" ASC`).
		Find(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		err := r.db.WithContext(ctx).
			Model(&models.Image{}).
			Where("no = ?", row.No).
			Update("order", row.Order-1).Error
		if err != nil {
			return err
		}
	}
	return nil
}
