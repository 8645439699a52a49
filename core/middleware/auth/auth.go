package auth

import "github.com/gofiber/fiber/v2"

// New returns a middleware guarding administrative endpoints with a static
// API key. An empty configured key disables the endpoints entirely rather
// than leaving them open.
func New(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "administrative endpoints are disabled",
			})
		}
		if c.Get("X-Api-Key") != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid api key",
			})
		}
		return c.Next()
	}
}
