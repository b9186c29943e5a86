package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/afkar-io/afkar-api/internal/utils"
)

// Auth role constants used by WithAuth helper.
const (
	AuthRoleAny        = "any"
	AuthRoleSubmitter  = "submitter"
	AuthRoleEvaluator  = "evaluator"
	AuthRoleManagement = "management"
)

// AuthOptions configures the WithAuth helper. The zero value requires an
// authenticated user of any role; AllowAnonymous opts a route out of that
// (only meaningful together with AuthRoleAny).
type AuthOptions struct {
	Role           string
	AllowAnonymous bool
}

// WithAuth wraps a handler with basic authentication/authorization guards.
func WithAuth(handler fiber.Handler, opts AuthOptions) fiber.Handler {
	role := strings.ToLower(strings.TrimSpace(opts.Role))
	if role == "" {
		role = AuthRoleAny
	}

	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id")

		if role == AuthRoleAny {
			if userID == nil && !opts.AllowAnonymous {
				return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
			}
			return handler(c)
		}

		if userID == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		currentRole := normalizeRoleValue(c.Locals("user_role"))
		switch role {
		case AuthRoleEvaluator:
			// Management reviews everything evaluators can.
			if currentRole != AuthRoleEvaluator && currentRole != AuthRoleManagement {
				return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
			}
		case AuthRoleManagement:
			if currentRole != AuthRoleManagement {
				return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
			}
		default:
			if currentRole != role {
				return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
			}
		}

		return handler(c)
	}
}
