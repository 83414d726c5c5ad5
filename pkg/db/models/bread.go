package models

import "time"

// Bread is a sellable product. Unit price is the smallest currency unit and is
// re-read at order time rather than trusted from the client.
type Bread struct {
	No          int64     `gorm:"column:no;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	UnitPrice   int64     `gorm:"column:unit_price;not null"`
	BreadStatus string    `gorm:"column:bread_status;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
