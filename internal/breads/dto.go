package breads

import (
	"time"

	"github.com/bonappetit-bakery/bakery-backend/internal/images"
)

// CreateInput carries the fields required to register a bread.
type CreateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unitPrice" validate:"gte=0"`
	BreadStatus string `json:"breadStatus" validate:"required"`
}

// UpdateInput carries a partial bread mutation; nil fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UnitPrice   *int64  `json:"unitPrice" validate:"omitempty,min=0"`
	BreadStatus *string `json:"breadStatus"`
}

// Summary is one row of the admin list view: bread fields, the resolved status
// name, and the position-1 thumbnail when one exists.
type Summary struct {
	No              int64     `json:"no"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	UnitPrice       int64     `json:"unitPrice"`
	BreadStatus     string    `json:"breadStatus"`
	BreadStatusName string    `json:"breadStatusName"`
	ImageURL        string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Detail is the full bread view with its ordered image list.
type Detail struct {
	No              int64                `json:"no"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	UnitPrice       int64                `json:"unitPrice"`
	BreadStatus     string               `json:"breadStatus"`
	BreadStatusName string               `json:"breadStatusName"`
	Images          []images.ImageRecord `json:"images"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}
