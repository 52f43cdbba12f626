package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ClientIDKey is the fiber.Ctx local holding the caller's client id.
const ClientIDKey = "clientID"

const ClientIDHeader = "X-Client-ID"

// EnsureClientID identifies the caller by the X-Client-ID header or the
// clientId query parameter, minting a new id when neither is present. The id
// is echoed back in the response header so clients can keep it.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.NewString()
		}

		c.Locals(ClientIDKey, clientID)
		c.Set(ClientIDHeader, clientID)
		return c.Next()
	}
}
