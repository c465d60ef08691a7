package middleware

import "github.com/gofiber/fiber/v2"

const (
	// PrincipalHeader carries the authenticated broker id resolved by the
	// auth layer in front of this API.
	PrincipalHeader = "X-Broker-ID"
	// PrincipalLocalKey is the key used to store the broker id in Fiber's
	// context locals.
	PrincipalLocalKey = "broker_id"
)

// Principal extracts the broker id from the request header into context
// locals. An absent header leaves the request anonymous; the ownership scoper
// decides what an anonymous request may see.
func Principal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(PrincipalLocalKey, c.Get(PrincipalHeader))
		return c.Next()
	}
}
