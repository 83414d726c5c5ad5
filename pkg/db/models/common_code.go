package models

import "time"

// CommonCode backs the display-name lookup tables loaded at startup.
type CommonCode struct {
	No        int64     `gorm:"column:no;primaryKey;autoIncrement"`
	GroupName string    `gorm:"column:group_name;not null;uniqueIndex:uq_common_codes_group_code,priority:1"`
	Code      string    `gorm:"column:code;not null;uniqueIndex:uq_common_codes_group_code,priority:2"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
