package models

import "time"

// DeliveryMethod is read-only from this core; only the fee feeds the total.
type DeliveryMethod struct {
	No           int64     `gorm:"column:no;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null"`
	DeliveryType string    `gorm:"column:delivery_type;not null"`
	Fee          int64     `gorm:"column:fee;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
