package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const identityLocalKey = "API_IDENTITY"

// Identity is the caller attached to a request after the bearer check.
// There is exactly one API identity today: every caller presenting the
// shared secret gets the same role and permission set.
type Identity struct {
	Authenticated bool
	Role          string
	Permissions   []string
}

// GetIdentity returns the identity attached by RequireAPIKey, or nil.
func GetIdentity(c *fiber.Ctx) *Identity {
	id, _ := c.Locals(identityLocalKey).(*Identity)
	return id
}

// RequireAPIKey authenticates requests against the single shared bearer
// secret. Missing or malformed headers are 401, a wrong key is 403.
func RequireAPIKey(accessToken string, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Warn("missing authorization header", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warn("invalid authorization format", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid authentication format"})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if accessToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(accessToken)) != 1 {
			log.Warn("invalid api key provided", "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid API key"})
		}

		c.Locals(identityLocalKey, &Identity{
			Authenticated: true,
			Role:          "api",
			Permissions:   []string{"read", "write"},
		})
		return c.Next()
	}
}

// RequirePermission rejects requests whose identity does not hold every
// listed permission. It expects RequireAPIKey to have run first.
func RequirePermission(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil || !identity.Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
		}

		held := make(map[string]bool, len(identity.Permissions))
		for _, p := range identity.Permissions {
			held[p] = true
		}
		for _, p := range required {
			if !held[p] {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient permissions"})
			}
		}
		return c.Next()
	}
}

// ReadAccess gates read-only routes.
func ReadAccess() fiber.Handler {
	return RequirePermission("read")
}

// WriteAccess gates mutating routes.
func WriteAccess() fiber.Handler {
	return RequirePermission("read", "write")
}

// AdminAccess gates administrative routes. The fixed API identity never
// holds the admin permission, so routes behind this preset reject every
// caller until per-caller credentials exist. Kept deliberately: granting
// admin silently here is a product decision, not a rewrite decision.
func AdminAccess() fiber.Handler {
	return RequirePermission("read", "write", "admin")
}
