package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// RequireViewToken gates the client-facing proposal/quote views on a
// query-string access token. Only presence is enforced today; tokens are
// not yet persisted anywhere they could be checked against.
// TODO: validate the token against stored per-resource tokens and their
// expiry once token persistence lands.
func RequireViewToken(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			log.Warn("view access denied: no token provided", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).Render("errors/unauthorized", fiber.Map{
				"Title":   "Unauthorized Access",
				"Message": "Access token is required",
			})
		}

		// Access is logged so proposal/quote opens can be tracked later.
		log.Info("view access granted", "path", c.Path(), "id", c.Params("id"))
		return c.Next()
	}
}
