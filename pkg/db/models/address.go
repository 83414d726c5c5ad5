package models

import "time"

// Address is a shipping destination owned by a customer. Once an order
// references it, updates go through address management, not this core.
type Address struct {
	No              int64     `gorm:"column:no;primaryKey;autoIncrement"`
	CustomerNo      int64     `gorm:"column:customer_no;not null"`
	Address         string    `gorm:"column:address;not null"`
	AddressDetail   string    `gorm:"column:address_detail"`
	Zipcode         string    `gorm:"column:zipcode;not null"`
	Message         string    `gorm:"column:message"`
	RecipientName   string    `gorm:"column:recipient_name;not null"`
	RecipientMobile string    `gorm:"column:recipient_mobile;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
