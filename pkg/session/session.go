// Package session carries the caller identity between the auth
// middleware and the handlers.
package session

import (
	"strings"
	"time"

	"Recipe-Box/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieName = "session"

	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Identity returns the authenticated caller, or nil for an anonymous request.
func Identity(c *fiber.Ctx) *domain.Identity {
	id, ok := c.Locals(LocalUserID).(string)
	if !ok || id == "" {
		return nil
	}
	role, _ := c.Locals(LocalRole).(string)
	return &domain.Identity{ID: id, Role: role}
}

func SetIdentity(c *fiber.Ctx, userID, role string) {
	c.Locals(LocalUserID, userID)
	c.Locals(LocalRole, role)
}

// Token extracts a bearer token from the Authorization header, falling
// back to the session cookie.
func Token(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return c.Cookies(CookieName)
}

func SetCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
