package repositories

import (
	"fmt"
	"sync"
	"time"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	orders   *MockOrderRepository // for cascade delete, optional
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
// If orders is non-nil, deleting a product also removes its orders, matching
// the GORM implementation.
func NewMockProductRepository(orders *MockOrderRepository) *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		orders:   orders,
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ID, errs.ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID, cascading to its orders.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	delete(r.products, id)
	if r.orders != nil {
		r.orders.deleteByProduct(id)
	}
	return nil
}
