package orders

import (
	"context"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the rows created during order placement. All writes are
// expected to run inside the placement transaction via WithTx.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	SetDefaultAddress(ctx context.Context, customerNo, addressNo int64) error
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the order repository on the shared gorm handle.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *repository) SetDefaultAddress(ctx context.Context, customerNo, addressNo int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("no = ?", customerNo).
		Update("default_address_no", addressNo).Error
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
