package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locale resolves the requested locale from the lang query parameter or the
// Accept-Language header and binds it to the request. Handlers read the raw
// value; normalization happens in the localization service.
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := strings.TrimSpace(c.Query("lang"))
		if requested == "" {
			requested = strings.TrimSpace(c.Get("Accept-Language"))
		}

		c.Locals("locale", requested)
		return c.Next()
	}
}

// GetLocale returns the locale bound to the active request.
func GetLocale(c *fiber.Ctx) string {
	if value := c.Locals("locale"); value != nil {
		if locale, ok := value.(string); ok {
			return locale
		}
	}
	return ""
}
