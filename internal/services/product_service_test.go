package services_test

import (
	"testing"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"
	"onlinestore/internal/policy"
	"onlinestore/internal/repositories"
	"onlinestore/internal/services"

	"github.com/stretchr/testify/assert"
)

func newProductFixture() (*services.ProductService, *repositories.MockProductRepository, *repositories.MockOrderRepository) {
	orderRepo := repositories.NewMockOrderRepository()
	productRepo := repositories.NewMockProductRepository(orderRepo)
	return services.NewProductService(productRepo), productRepo, orderRepo
}

func TestProductService_PublicReads(t *testing.T) {
	svc, productRepo, _ := newProductFixture()

	err := productRepo.Create(&models.Product{ID: "prod-1", Name: "Laptop", Price: 1200, StockQuantity: 10})
	assert.NoError(t, err)

	// Anonymous identity can browse the catalog.
	products, err := svc.GetAllProducts(nil)
	assert.NoError(t, err)
	assert.Len(t, products, 1)

	product, err := svc.GetProductByID(nil, "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)

	_, err = svc.GetProductByID(nil, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProductService_WritesAreStaffOnly(t *testing.T) {
	svc, _, _ := newProductFixture()
	customer := &policy.Identity{UserID: "u1"}
	staff := &policy.Identity{UserID: "u2", Staff: true}

	product := &models.Product{Name: "Keyboard", Price: 75, StockQuantity: 25}

	assert.ErrorIs(t, svc.CreateProduct(nil, product), errs.ErrUnauthenticated)
	assert.ErrorIs(t, svc.CreateProduct(customer, product), errs.ErrForbidden)
	assert.NoError(t, svc.CreateProduct(staff, product))
	assert.NotEmpty(t, product.ID)

	product.Price = 80
	assert.ErrorIs(t, svc.UpdateProduct(customer, product), errs.ErrForbidden)
	assert.NoError(t, svc.UpdateProduct(staff, product))

	assert.ErrorIs(t, svc.DeleteProduct(customer, product.ID), errs.ErrForbidden)
	assert.NoError(t, svc.DeleteProduct(staff, product.ID))
}

func TestProductService_DeleteCascadesToOrders(t *testing.T) {
	svc, productRepo, orderRepo := newProductFixture()
	staff := &policy.Identity{UserID: "u2", Staff: true}

	err := productRepo.Create(&models.Product{ID: "prod-1", Name: "Laptop", Price: 1200, StockQuantity: 10})
	assert.NoError(t, err)
	assert.NoError(t, orderRepo.Create(&models.Order{ID: "o1", ProductID: "prod-1", Quantity: 1, UserID: strPtr("u1")}))
	assert.NoError(t, orderRepo.Create(&models.Order{ID: "o2", ProductID: "other", Quantity: 1, UserID: strPtr("u1")}))

	assert.NoError(t, svc.DeleteProduct(staff, "prod-1"))

	_, err = orderRepo.GetByID("o1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	// Orders for other products are untouched.
	_, err = orderRepo.GetByID("o2")
	assert.NoError(t, err)
}
