package delivery

import (
	"context"
	"errors"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes read-only delivery-method lookups for order placement.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByNo(ctx context.Context, no int64) (*models.DeliveryMethod, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a delivery-method repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindByNo returns the delivery method or nil when it does not exist; a
// missing method contributes a zero fee to the total.
func (r *repository) FindByNo(ctx context.Context, no int64) (*models.DeliveryMethod, error) {
	var method models.DeliveryMethod
	err := r.db.WithContext(ctx).Where("no = ?", no).First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}
