package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireUUIDParam rejects requests whose named path parameter is not a
// well-formed UUID, before it ever reaches a database cast.
func RequireUUIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uuid.Validate(c.Params(name)) != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid " + name + " parameter"})
		}
		return c.Next()
	}
}
