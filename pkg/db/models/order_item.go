package models

import "time"

// OrderItem is a line item. UnitPrice is a snapshot taken at order time and is
// never re-derived from the bread table afterwards.
type OrderItem struct {
	No         int64     `gorm:"column:no;primaryKey;autoIncrement"`
	OrderNo    int64     `gorm:"column:order_no;not null"`
	BreadNo    int64     `gorm:"column:bread_no;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	UnitPrice  int64     `gorm:"column:unit_price;not null"`
	TotalPrice int64     `gorm:"column:total_price;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
