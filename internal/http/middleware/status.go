package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// responseStatus is the status the client will see. When the chain returned
// an error the global ErrorHandler has not run yet, so the code is derived
// from the error instead of the response.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
