package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
// GetAll must return orders in insertion order.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
