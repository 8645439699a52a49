package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New returns a middleware assigning every request a ray id, used to
// correlate log entries across the handler, repository and mirror layers.
// An inbound X-Ray-ID header is honoured so a fronting proxy can thread its
// own id through.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Ray-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set("X-Ray-ID", rid)
		return c.Next()
	}
}
