package middleware

import (
	"Recipe-Box/domain"
	"Recipe-Box/internal/api/presenters"
	"Recipe-Box/pkg/jwt"
	"Recipe-Box/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		SessionMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     m.allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: m.allowOrigins != "*",
	})
}

// AuthMiddleware rejects requests without a valid session.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.Token(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		session.SetIdentity(c, userID, role)
		return c.Next()
	}
}

// SessionMiddleware attaches the identity when the request carries a
// valid session and lets anonymous requests through. Operations decide
// for themselves whether an identity is required.
func (m *middleware) SessionMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := session.Token(c); token != "" {
			if userID, role, err := jwtService.GetUserIDByToken(token); err == nil {
				session.SetIdentity(c, userID, role)
			}
		}
		return c.Next()
	}
}
