package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/tastebook/backend/internal/handlers"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/pkg/logger"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.Infof("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, jwtSecret string) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Follow{},
		&models.FavoriteRecipe{},
		&models.ShoppingList{},
	)
	if err != nil {
		logger.Fatalf("Failed to auto migrate models: %v", err)
	}
	logger.Infof("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	ingredientRepo := repositories.NewPostgresIngredientRepository(db)
	recipeRepo := repositories.NewPostgresRecipeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db)
	shoppingListRepo := repositories.NewPostgresShoppingListRepository(db)

	// --- Initialize Services ---
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo)
	shoppingListService := service.NewShoppingListService(shoppingListRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Infof("Auth routes configured.")

	// --- Public reads (anonymous allowed, identity only affects annotations) ---
	public := e.Group("/api")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	tagHandler := handlers.NewTagHandler(tagRepo)
	tagHandler.RegisterTagRoutes(public)

	ingredientHandler := handlers.NewIngredientHandler(ingredientRepo)
	ingredientHandler.RegisterIngredientRoutes(public)

	userHandler := handlers.NewUserHandler(userRepo, followRepo, recipeRepo)
	userHandler.RegisterPublicUserRoutes(public)

	recipeHandler := handlers.NewRecipeHandler(
		recipeService, shoppingListService,
		recipeRepo, favoriteRepo, shoppingListRepo, followRepo,
	)
	recipeHandler.RegisterPublicRecipeRoutes(public)
	logger.Infof("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	userHandler.RegisterUserRoutes(api)
	recipeHandler.RegisterRecipeRoutes(api)
	logger.Infof("Protected routes configured.")

	logger.Infof("All routes configured.")
}
