package handlers

import (
	"errors"
	"fmt"
	"log"

	"onlinestore/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into the HTTP response the error
// kind prescribes. Validation errors carry their field map; everything else
// gets a single error string.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *errs.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": vErr.Fields})
	case errors.Is(err, errs.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	case errors.Is(err, errs.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	case errors.Is(err, errs.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// fieldErrors flattens validator tag failures into a field to message map.
func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, e := range vErrs {
			messages[e.Field()] = fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
	} else {
		messages["body"] = err.Error()
	}
	return messages
}
