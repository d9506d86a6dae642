package services

import (
	"onlinestore/internal/models"
	"onlinestore/internal/policy"
	"onlinestore/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
// Every operation consults the access policy before touching the store.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves all products. The catalog is public.
func (s *ProductService) GetAllProducts(id *policy.Identity) ([]models.Product, error) {
	if err := policy.Allow(id, policy.Product, policy.List, nil); err != nil {
		return nil, err
	}
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id *policy.Identity, productID string) (*models.Product, error) {
	if err := policy.Allow(id, policy.Product, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.repo.GetByID(productID)
}

// CreateProduct creates a new product. Staff only.
func (s *ProductService) CreateProduct(id *policy.Identity, product *models.Product) error {
	if err := policy.Allow(id, policy.Product, policy.Create, nil); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Staff only.
func (s *ProductService) UpdateProduct(id *policy.Identity, product *models.Product) error {
	if err := policy.Allow(id, policy.Product, policy.Write, nil); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product and, by cascade, its orders. Staff only.
func (s *ProductService) DeleteProduct(id *policy.Identity, productID string) error {
	if err := policy.Allow(id, policy.Product, policy.Delete, nil); err != nil {
		return err
	}
	return s.repo.Delete(productID)
}
