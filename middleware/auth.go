// middleware/auth.go
package middleware

import (
	"log"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by UserContextMiddleware.
const (
	LocalUserID    = "user_id"
	LocalUserName  = "user_name"
	LocalUserRoles = "user_roles"
)

// RoleAdmin is required for hunt administration.
const RoleAdmin = "admin"

// UserContextMiddleware extracts the acting player set by the gateway.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var roles []string
		for _, r := range strings.Split(c.Get("X-User-Roles"), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}

		c.Locals(LocalUserID, c.Get("X-User-ID"))
		c.Locals(LocalUserName, c.Get("X-User-Name"))
		c.Locals(LocalUserRoles, roles)
		return c.Next()
	}
}

// RequireUser rejects requests without a player identity.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, _ := c.Locals(LocalUserID).(string); id == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose player lacks role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(LocalUserRoles).([]string)
		if !slices.Contains(roles, role) {
			log.Printf("🚫 [USER_CTX] %q role required for %s", role, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
			})
		}
		return c.Next()
	}
}
