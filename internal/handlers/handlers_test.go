package handlers

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/service"
)

type handlerFixture struct {
	db            *gorm.DB
	e             *echo.Echo
	userHandler   *UserHandler
	recipeHandler *RecipeHandler
}

func setupHandlers(t *testing.T) *handlerFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Follow{},
		&models.FavoriteRecipe{},
		&models.ShoppingList{},
	)
	require.NoError(t, err)

	userRepo := repositories.NewPostgresUserRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	ingredientRepo := repositories.NewPostgresIngredientRepository(db)
	recipeRepo := repositories.NewPostgresRecipeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db)
	shoppingListRepo := repositories.NewPostgresShoppingListRepository(db)

	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo)
	shoppingListService := service.NewShoppingListService(shoppingListRepo)

	return &handlerFixture{
		db:          db,
		e:           echo.New(),
		userHandler: NewUserHandler(userRepo, followRepo, recipeRepo),
		recipeHandler: NewRecipeHandler(
			recipeService, shoppingListService,
			recipeRepo, favoriteRepo, shoppingListRepo, followRepo,
		),
	}
}

// newContext builds a request context; userID 0 means anonymous.
func (f *handlerFixture) newContext(method, target string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func (f *handlerFixture) newIDContext(method, target string, userID, paramID uint) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := f.newContext(method, target, userID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(paramID), 10))
	return c, rec
}

func (f *handlerFixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Email: username + "@example.com", Username: username, Password: "hash"}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *handlerFixture) seedRecipe(t *testing.T, author *models.User, name string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{AuthorID: author.ID, Name: name, Text: "text", CookingTime: 15}
	require.NoError(t, f.db.Create(recipe).Error)
	return recipe
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, httpCode(t, err))
}

func requireStatus(t *testing.T, err error, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, code, rec.Code)
}
