package breads

import (
	"context"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"gorm.io/gorm"
)

// listCap bounds the admin list view.
const listCap = 10000

// Repository persists bread rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Bread, error)
	FindByNo(ctx context.Context, no int64) (*models.Bread, error)
	Create(ctx context.Context, bread *models.Bread) (*models.Bread, error)
	Update(ctx context.Context, no int64, fields map[string]any) error
	DeleteByNos(ctx context.Context, nos []int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bread repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Bread, error) {
	var rows []models.Bread
	err := r.db.WithContext(ctx).
		Limit(listCap).
		Order("no DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByNo(ctx context.Context, no int64) (*models.Bread, error) {
	var bread models.Bread
	if err := r.db.WithContext(ctx).Where("no = ?", no).First(&bread).Error; err != nil {
		return nil, err
	}
	return &bread, nil
}

func (r *repository) Create(ctx context.Context, bread *models.Bread) (*models.Bread, error) {
	if err := r.db.WithContext(ctx).Create(bread).Error; err != nil {
		return nil, err
	}
	return bread, nil
}

func (r *repository) Update(ctx context.Context, no int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Bread{}).
		Where("no = ?", no).
		Updates(fields).Error
}

func (r *repository) DeleteByNos(ctx context.Context, nos []int64) error {
	if len(nos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("no IN ?", nos).Delete(&models.Bread{}).Error
}
