package routes

import (
	"Recipe-Box/internal/api/handlers"
	"Recipe-Box/internal/middleware"
	"Recipe-Box/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	UploadHandler handlers.UploadHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Uploads()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

// Recipes resolve the session but leave the sign-in check to the
// operations themselves.
func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.SessionMiddleware(c.JWTService))
	recipes.Get("", c.RecipeHandler.ListRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipe)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Uploads() {
	c.App.Post("/api/v1/uploads", c.Middleware.SessionMiddleware(c.JWTService), c.UploadHandler.UploadImage)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
