package models

import "gorm.io/gorm"

// Product represents a product in the catalog. Catalog records are
// reference data: created at seed time and never mutated by the cart.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,max=100"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
