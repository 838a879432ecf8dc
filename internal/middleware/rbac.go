package middleware

import (
	"patient-reports/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	RoleAdmin     = "admin"
	RoleClinician = "clinician"
	RoleAnalyst   = "analyst"
)

// RequireRole lets the request through when the authenticated user holds any of
// roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !claims.HasRole(RoleAdmin) && !claims.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
