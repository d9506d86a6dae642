package repositories

import (
	"fmt"
	"sync"
	"time"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetAllByUser returns the orders owned by a single user.
func (r *MockOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, errs.ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Update modifies an existing order, preserving its owner and creation time.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", order.ID, errs.ErrNotFound)
	}
	order.UserID = existing.UserID
	order.CreatedAt = existing.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, errs.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

// deleteByProduct removes every order referencing the given product.
func (r *MockOrderRepository) deleteByProduct(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, order := range r.orders {
		if order.ProductID == productID {
			delete(r.orders, id)
		}
	}
}
