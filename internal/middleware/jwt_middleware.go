package middleware

import (
	"log"
	"strings"

	"onlinestore/internal/policy"
	"onlinestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token and stores the resulting identity in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.IdentityFromToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// Identity returns the authenticated identity stored by AuthRequired, or nil
// for anonymous requests.
func Identity(c *fiber.Ctx) *policy.Identity {
	if id, ok := c.Locals(identityKey).(*policy.Identity); ok {
		return id
	}
	return nil
}
