package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-ID"

// CorrelationID tags every request with a stable identifier so log lines,
// audit entries, and notification events for a single request can be joined.
// Incoming identifiers from upstream proxies are honoured, otherwise a fresh
// UUID is minted and echoed back to the client.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := requestIdentifier(c)
		c.Locals("correlation_id", id)
		c.Set(correlationHeader, id)
		return c.Next()
	}
}

func requestIdentifier(c *fiber.Ctx) string {
	for _, header := range []string{correlationHeader, "X-Request-ID"} {
		if id := strings.TrimSpace(c.Get(header)); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

// GetCorrelationID returns the identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals("correlation_id").(string); ok {
		return id
	}
	return ""
}
