package models

import "time"

// Customer is a purchaser, registered or guest. Guest checkout creates one per order.
type Customer struct {
	No               int64     `gorm:"column:no;primaryKey;autoIncrement"`
	Name             string    `gorm:"column:name;not null"`
	MobileNumber     string    `gorm:"column:mobile_number;not null"`
	DefaultAddressNo *int64    `gorm:"column:default_address_no"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
