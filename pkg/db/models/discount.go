package models

import (
	"time"

	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

// Discount is a time-bounded promotional reduction.
type Discount struct {
	No           int64              `gorm:"column:no;primaryKey;autoIncrement"`
	DiscountType enums.DiscountType `gorm:"column:discount_type;not null"`
	Amount       int64              `gorm:"column:amount;not null"`
	FromDt       time.Time          `gorm:"column:from_dt;not null"`
	ToDt         time.Time          `gorm:"column:to_dt;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
