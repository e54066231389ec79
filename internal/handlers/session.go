package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "session_id"

// ensureSession returns the request's session id, issuing a new cookie when
// the client does not carry one yet.
func ensureSession(c *fiber.Ctx) string {
	if id := c.Cookies(sessionCookie); id != "" {
		return id
	}

	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}
