package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Recipe-Box/pkg/jwt"
	"Recipe-Box/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(tokens jwt.JWTService) *fiber.App {
	m := NewMiddleware("")
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		if id := session.Identity(c); id != nil {
			return c.SendString(id.ID)
		}
		return c.SendString("anonymous")
	}
	app.Get("/strict", m.AuthMiddleware(tokens), whoami)
	app.Get("/loose", m.SessionMiddleware(tokens), whoami)
	return app
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTServiceWith("secret", time.Hour)
	app := newApp(tokens)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/strict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/strict", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/strict", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.GenerateTokenUser("u-1", "user"))
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "u-1", body(t, res))
}

func TestSessionMiddleware(t *testing.T) {
	tokens := jwt.NewJWTServiceWith("secret", time.Hour)
	app := newApp(tokens)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/loose", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "anonymous", body(t, res))

	req := httptest.NewRequest(http.MethodGet, "/loose", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tokens.GenerateTokenUser("u-2", "user")})
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "u-2", body(t, res))

	req = httptest.NewRequest(http.MethodGet, "/loose", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired-or-forged"})
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", body(t, res))
}
