package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"gorm.io/gorm"
)

// getUserIDFromContext returns the authenticated user's id, or 0 for an
// anonymous request.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

var validationErrors = []error{
	service.ErrNoIngredients,
	service.ErrDuplicateIngredient,
	service.ErrInvalidAmount,
	service.ErrNoTags,
	service.ErrUnknownTag,
	service.ErrUnknownIngredient,
	service.ErrInvalidCookingTime,
}

// serviceHTTPError maps service and storage errors onto HTTP errors.
func serviceHTTPError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	if errors.Is(err, service.ErrNotAuthor) {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// newUserResponse builds the viewer-relative user view. Pure: subscription
// state is computed by the caller and passed in.
func newUserResponse(user *models.User, isSubscribed bool) models.UserResponse {
	return models.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func newShortRecipeResponse(recipe *models.Recipe) models.ShortRecipeResponse {
	return models.ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// newRecipeResponse builds the full recipe view from a preloaded recipe and
// the viewer-relative annotations.
func newRecipeResponse(recipe *models.Recipe, authorSubscribed, isFavorited, isInShoppingCart bool) models.RecipeResponse {
	ingredients := make([]models.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, link := range recipe.Ingredients {
		ingredients = append(ingredients, models.RecipeIngredientResponse{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return models.RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(&recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}
