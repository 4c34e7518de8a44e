package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CORS sets permissive cross-origin headers on every response. The
// storefront is served from a different origin, so the API answers any
// origin; there is no credentialed access.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type")
		return c.Next()
	}
}
