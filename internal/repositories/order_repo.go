package repositories

import "onlinestore/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	// GetAllByUser returns only the orders owned by the given user. The
	// filtering happens at the query level, not by post-filtering GetAll.
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
}
