package commoncode

import (
	"context"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the common_code table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a common-code repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every common-code row across all groups.
func (r *Repository) ListAll(ctx context.Context) ([]models.CommonCode, error) {
	var rows []models.CommonCode
	err := r.db.WithContext(ctx).
		Order("group_name ASC, code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
