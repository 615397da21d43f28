package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/models"
)

func TestAddFavoriteTwice(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	recipe := f.seedRecipe(t, user, "Borscht")

	c, rec := f.newIDContext(http.MethodPost, "/api/recipes/1/favorite", user.ID, recipe.ID)
	requireStatus(t, f.recipeHandler.AddFavorite(c), rec, http.StatusCreated)

	var short models.ShortRecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &short))
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Borscht", short.Name)

	c, _ = f.newIDContext(http.MethodPost, "/api/recipes/1/favorite", user.ID, recipe.ID)
	err := f.recipeHandler.AddFavorite(c)
	requireHTTPError(t, err, http.StatusBadRequest)

	var count int64
	require.NoError(t, f.db.Model(&models.FavoriteRecipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemoveFavoriteNotPresent(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	recipe := f.seedRecipe(t, user, "Borscht")

	c, _ := f.newIDContext(http.MethodDelete, "/api/recipes/1/favorite", user.ID, recipe.ID)
	err := f.recipeHandler.RemoveFavorite(c)
	requireHTTPError(t, err, http.StatusBadRequest)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")

	c, _ := f.newIDContext(http.MethodPost, "/api/recipes/999/favorite", user.ID, 999)
	err := f.recipeHandler.AddFavorite(c)
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestInterestSetActionsRequireAuth(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	recipe := f.seedRecipe(t, user, "Borscht")

	c, _ := f.newIDContext(http.MethodPost, "/api/recipes/1/favorite", 0, recipe.ID)
	requireHTTPError(t, f.recipeHandler.AddFavorite(c), http.StatusUnauthorized)

	c, _ = f.newIDContext(http.MethodPost, "/api/recipes/1/shopping_cart", 0, recipe.ID)
	requireHTTPError(t, f.recipeHandler.AddToShoppingCart(c), http.StatusUnauthorized)

	c, _ = f.newContext(http.MethodGet, "/api/recipes/download_shopping_cart", 0)
	requireHTTPError(t, f.recipeHandler.DownloadShoppingCart(c), http.StatusUnauthorized)
}

func TestDownloadShoppingCart(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")

	flour := &models.Ingredient{Name: "Flour", MeasurementUnit: "g"}
	egg := &models.Ingredient{Name: "Egg", MeasurementUnit: "pcs"}
	milk := &models.Ingredient{Name: "Milk", MeasurementUnit: "ml"}
	require.NoError(t, f.db.Create(flour).Error)
	require.NoError(t, f.db.Create(egg).Error)
	require.NoError(t, f.db.Create(milk).Error)

	pancakes := f.seedRecipe(t, user, "Pancakes")
	crepes := f.seedRecipe(t, user, "Crepes")
	for _, link := range []models.RecipeIngredient{
		{RecipeID: pancakes.ID, IngredientID: flour.ID, Amount: 200},
		{RecipeID: pancakes.ID, IngredientID: egg.ID, Amount: 2},
		{RecipeID: crepes.ID, IngredientID: flour.ID, Amount: 100},
		{RecipeID: crepes.ID, IngredientID: milk.ID, Amount: 50},
	} {
		require.NoError(t, f.db.Create(&link).Error)
	}
	require.NoError(t, f.db.Create(&models.ShoppingList{UserID: user.ID, RecipeID: pancakes.ID}).Error)
	require.NoError(t, f.db.Create(&models.ShoppingList{UserID: user.ID, RecipeID: crepes.ID}).Error)

	c, rec := f.newContext(http.MethodGet, "/api/recipes/download_shopping_cart", user.ID)
	requireStatus(t, f.recipeHandler.DownloadShoppingCart(c), rec, http.StatusOK)

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=shopping_list.txt", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Egg (pcs) 2\nFlour (g) 300\nMilk (ml) 50", rec.Body.String())
}

func TestDownloadShoppingCartEmpty(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")

	c, rec := f.newContext(http.MethodGet, "/api/recipes/download_shopping_cart", user.ID)
	requireStatus(t, f.recipeHandler.DownloadShoppingCart(c), rec, http.StatusOK)
	assert.Equal(t, "", rec.Body.String())
}

func TestListRecipesInterestFilterAnonymous(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	recipe := f.seedRecipe(t, user, "Borscht")
	require.NoError(t, f.db.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}).Error)

	c, rec := f.newContext(http.MethodGet, "/api/recipes?is_favorited=1", 0)
	requireStatus(t, f.recipeHandler.ListRecipes(c), rec, http.StatusOK)

	var recipes []models.RecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipes))
	assert.Empty(t, recipes)
}

func TestListRecipesInterestFilterForViewer(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	liked := f.seedRecipe(t, user, "Borscht")
	f.seedRecipe(t, user, "Okroshka")
	require.NoError(t, f.db.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: liked.ID}).Error)

	c, rec := f.newContext(http.MethodGet, "/api/recipes?is_favorited=1", user.ID)
	requireStatus(t, f.recipeHandler.ListRecipes(c), rec, http.StatusOK)

	var recipes []models.RecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, liked.ID, recipes[0].ID)
	assert.True(t, recipes[0].IsFavorited)

	c, rec = f.newContext(http.MethodGet, "/api/recipes?is_favorited=0", user.ID)
	requireStatus(t, f.recipeHandler.ListRecipes(c), rec, http.StatusOK)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Okroshka", recipes[0].Name)
}

func TestListRecipesByTagSlug(t *testing.T) {
	f := setupHandlers(t)
	user := f.seedUser(t, "user")
	tag := &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}
	require.NoError(t, f.db.Create(tag).Error)

	tagged := f.seedRecipe(t, user, "Borscht")
	require.NoError(t, f.db.Model(tagged).Association("Tags").Append(tag))
	f.seedRecipe(t, user, "Okroshka")

	c, rec := f.newContext(http.MethodGet, "/api/recipes?tags=dinner", 0)
	requireStatus(t, f.recipeHandler.ListRecipes(c), rec, http.StatusOK)

	var recipes []models.RecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, tagged.ID, recipes[0].ID)
}
