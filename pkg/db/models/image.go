package models

import (
	"time"

	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

// Image is a positioned photo attached to a target entity. For a fixed
// (target type, target no) pair the set of Order values is exactly 1..N.
// The unique index backs the append retry on concurrent inserts.
type Image struct {
	No              int64                 `gorm:"column:no;primaryKey;autoIncrement"`
	PublicID        string                `gorm:"column:public_id;not null;uniqueIndex:uq_images_public_id"`
	URL             string                `gorm:"column:url;not null"`
	Name            string                `gorm:"column:name"`
	ImageTargetType enums.ImageTargetType `gorm:"column:image_target_type;not null;uniqueIndex:uq_images_target_order,priority:1"`
	ImageTargetNo   int64                 `gorm:"column:image_target_no;not null;uniqueIndex:uq_images_target_order,priority:2"`
	Order           int                   `gorm:"column:order;not null;uniqueIndex:uq_images_target_order,priority:3"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
