package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository is the price book: read-only lookups of unit prices and the best
// matching time-bounded discount.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UnitPrices(ctx context.Context, breadNos []int64) (map[int64]int64, error)
	ActiveDiscount(ctx context.Context, discountType enums.DiscountType, at time.Time) (*models.Discount, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a price book bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// UnitPrices returns the current unit price for each requested bread that
// exists. Unknown identifiers are silently omitted; callers treat a missing
// price as zero.
func (r *repository) UnitPrices(ctx context.Context, breadNos []int64) (map[int64]int64, error) {
	prices := make(map[int64]int64, len(breadNos))
	if len(breadNos) == 0 {
		return prices, nil
	}

	var breads []models.Bread
	err := r.db.WithContext(ctx).
		Select("no", "unit_price").
		Where("no IN ?", breadNos).
		Find(&breads).Error
	if err != nil {
		return nil, err
	}

	for _, bread := range breads {
		prices[bread.No] = bread.UnitPrice
	}
	return prices, nil
}

// ActiveDiscount returns the discount of the given type whose [from, to]
// window contains `at`, preferring the largest amount. Ties fall back to the
// store's default ordering. Returns nil when no discount qualifies.
func (r *repository) ActiveDiscount(ctx context.Context, discountType enums.DiscountType, at time.Time) (*models.Discount, error) {
	var discount models.Discount
	err := r.db.WithContext(ctx).
		Where("discount_type = ? AND from_dt <= ? AND to_dt >= ?", discountType, at, at).
		Order("amount DESC").
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}
