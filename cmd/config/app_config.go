package config

import (
	"os"
	"path/filepath"

	"Recipe-Box/internal/api/handlers"
	"Recipe-Box/internal/api/routes"
	"Recipe-Box/internal/middleware"
	"Recipe-Box/internal/utils"
	"Recipe-Box/internal/utils/storage"
	"Recipe-Box/pkg/jwt"
	"Recipe-Box/pkg/recipe"
	"Recipe-Box/pkg/upload"
	"Recipe-Box/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers into a Fiber app. The
// returned file is the access log and must be closed by the caller.
func NewApp(db *gorm.DB) (*fiber.App, *os.File, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:   "Recipe Box",
		BodyLimit: 10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"))
	validator := utils.Validate

	// setting up logging
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	// utils
	store, err := storage.NewStorage()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	if disk, ok := store.(*storage.LocalDisk); ok {
		app.Static("/uploads", disk.Dir())
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	uploadService := upload.NewUploadService(store)
	recipeService := recipe.NewRecipeService(recipeRepository, store)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, uploadService, validator)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		UploadHandler: uploadHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, file, nil
}
