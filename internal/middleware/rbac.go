package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := roleSet(roles)
	return func(c *fiber.Ctx) error {
		if denied, err := authorize(c, allowed); denied {
			return err
		}
		return c.Next()
	}
}

// RequireStudent allows only student sessions.
func RequireStudent() fiber.Handler {
	return RequireRole(models.RoleStudent)
}

// RequireAdmin allows only admin sessions.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// WithAuth wraps a single handler with a role guard, for routes that sit in
// an otherwise public group.
func WithAuth(handler fiber.Handler, roles ...string) fiber.Handler {
	allowed := roleSet(roles)
	return func(c *fiber.Ctx) error {
		if denied, err := authorize(c, allowed); denied {
			return err
		}
		return handler(c)
	}
}

func roleSet(roles []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}
	return allowed
}

// authorize writes the rejection response and reports true when the request
// may not proceed.
func authorize(c *fiber.Ctx, allowed map[string]struct{}) (bool, error) {
	if c.Locals("user_id") == nil {
		return true, utils.SendError(c, fiber.StatusUnauthorized, ErrNoToken.Error())
	}
	role := normalizeRoleValue(c.Locals("user_role"))
	if _, ok := allowed[role]; !ok {
		return true, utils.SendError(c, fiber.StatusForbidden, fmt.Sprintf("user role %s is not authorized to access this route", displayRole(role)))
	}
	return false, nil
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}

func displayRole(role string) string {
	if role == "" {
		return "unknown"
	}
	return role
}
