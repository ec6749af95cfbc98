package middleware

import "github.com/gofiber/fiber/v2"

// Noop simply calls the next handler. It stands in for optional middleware
// that is switched off.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
