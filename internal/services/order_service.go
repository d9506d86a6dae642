package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"
	"onlinestore/internal/policy"
	"onlinestore/internal/repositories"
)

// OrderRequest is the client-settable part of an order. The owning user is
// always taken from the authenticated identity, never from the payload.
type OrderRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	CustomerName  string `json:"customer_name" validate:"required,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to orders: access policy,
// quantity and stock validation, and event publication.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case event publication is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetOrders lists orders visible to the caller: all of them for staff, only
// the caller's own otherwise. The filter runs in the store query.
func (s *OrderService) GetOrders(id *policy.Identity) ([]models.Order, error) {
	if err := policy.Allow(id, policy.Order, policy.List, nil); err != nil {
		return nil, err
	}
	if id.Staff {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetAllByUser(id.UserID)
}

// GetOrderByID retrieves a single order. Non-staff callers get ErrNotFound
// for orders they do not own, identical to a missing record.
func (s *OrderService) GetOrderByID(id *policy.Identity, orderID string) (*models.Order, error) {
	if id == nil {
		return nil, errs.ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(id, policy.Order, policy.Read, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder validates the request and persists a new order owned by the
// caller. Quantity must be positive and must not exceed the product's stock
// as read at validation time; stock itself is not decremented here.
func (s *OrderService) CreateOrder(id *policy.Identity, req OrderRequest) (*models.Order, error) {
	if err := policy.Allow(id, policy.Order, policy.Create, nil); err != nil {
		return nil, err
	}
	product, err := s.validateOrder(req)
	if err != nil {
		return nil, err
	}

	userID := id.UserID
	order := &models.Order{
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		UserID:        &userID,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishCreated(order)
	return order, nil
}

// UpdateOrder revalidates and updates an existing order. Subject to the same
// ownership rule as reads; the owner itself never changes.
func (s *OrderService) UpdateOrder(id *policy.Identity, orderID string, req OrderRequest) (*models.Order, error) {
	if id == nil {
		return nil, errs.ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(id, policy.Order, policy.Write, order); err != nil {
		return nil, err
	}
	product, err := s.validateOrder(req)
	if err != nil {
		return nil, err
	}

	order.ProductID = product.ID
	order.Quantity = req.Quantity
	order.CustomerName = req.CustomerName
	order.CustomerEmail = req.CustomerEmail
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// DeleteOrder removes an order, subject to the ownership rule.
func (s *OrderService) DeleteOrder(id *policy.Identity, orderID string) error {
	if id == nil {
		return errs.ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if err := policy.Allow(id, policy.Order, policy.Delete, order); err != nil {
		return err
	}
	return s.orderRepo.Delete(orderID)
}

// validateOrder checks the quantity and the referenced product's current
// stock, returning field-level validation errors. Quantity sign is checked
// before stock sufficiency.
func (s *OrderService) validateOrder(req OrderRequest) (*models.Product, error) {
	if req.Quantity <= 0 {
		return nil, errs.Validation("quantity", "quantity must be greater than zero")
	}
	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Validation("product_id", fmt.Sprintf("product %s does not exist", req.ProductID))
		}
		return nil, err
	}
	if req.Quantity > product.StockQuantity {
		return nil, errs.Validation("quantity",
			fmt.Sprintf("not enough stock, available: %d", product.StockQuantity))
	}
	return product, nil
}

// publishCreated emits an order.created event. Failures are logged and never
// surfaced to the client.
func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":      "order.created",
		"order_id":   order.ID,
		"product_id": order.ProductID,
		"quantity":   order.Quantity,
		"user_id":    order.UserID,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("", "order_events", body); err != nil {
		log.Printf("Warning: failed to publish order.created for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order.created event for order %s", order.ID)
}
