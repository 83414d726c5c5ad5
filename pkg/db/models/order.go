package models

import (
	"time"

	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

// Order is a purchase transaction. TotalPrice must equal the sum of its items'
// line totals minus the applicable discount plus the delivery fee at creation.
type Order struct {
	No               int64             `gorm:"column:no;primaryKey;autoIncrement"`
	OrderNumber      string            `gorm:"column:order_number;not null;uniqueIndex:uq_orders_order_number"`
	CustomerNo       int64             `gorm:"column:customer_no;not null"`
	AddressNo        int64             `gorm:"column:address_no;not null"`
	DeliveryMethodNo int64             `gorm:"column:delivery_method_no;not null"`
	OrderStatus      enums.OrderStatus `gorm:"column:order_status;not null"`
	TotalPrice       int64             `gorm:"column:total_price;not null"`
	OrderPw          string            `gorm:"column:order_pw;not null"`
	Paid             bool              `gorm:"column:paid;not null;default:false"`
	Memo             string            `gorm:"column:memo"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
