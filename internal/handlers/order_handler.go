package handlers

import (
	"log"

	"onlinestore/internal/middleware"
	"onlinestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. Every route requires an
// authenticated caller; instance routes answer 404 for orders the caller may
// not see.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes; the router is expected to carry
// the auth middleware.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleGetOrders)
	router.Post("/orders", h.HandleCreateOrder)
	router.Get("/orders/:id", h.HandleGetOrderByID)
	router.Put("/orders/:id", h.HandleUpdateOrder)
	router.Delete("/orders/:id", h.HandleDeleteOrder)
}

// HandleGetOrders lists the orders visible to the caller.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(middleware.Identity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(middleware.Identity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCreateOrder creates an order owned by the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors(err),
		})
	}

	order, err := h.service.CreateOrder(middleware.Identity(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrder updates an existing order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req services.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors(err),
		})
	}

	order, err := h.service.UpdateOrder(middleware.Identity(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(middleware.Identity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
