package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/service"
	"gorm.io/gorm"
)

const shoppingListFilename = "shopping_list.txt"

// RecipeHandler handles recipe CRUD, interest-set actions and the
// shopping-list download.
type RecipeHandler struct {
	recipeService          service.RecipeService
	shoppingListService    service.ShoppingListService
	recipeRepository       repositories.RecipeRepository
	favoriteRepository     repositories.FavoriteRepository
	shoppingListRepository repositories.ShoppingListRepository
	followRepository       repositories.FollowRepository
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(
	recipeService service.RecipeService,
	shoppingListService service.ShoppingListService,
	recipeRepo repositories.RecipeRepository,
	favoriteRepo repositories.FavoriteRepository,
	shoppingListRepo repositories.ShoppingListRepository,
	followRepo repositories.FollowRepository,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:          recipeService,
		shoppingListService:    shoppingListService,
		recipeRepository:       recipeRepo,
		favoriteRepository:     favoriteRepo,
		shoppingListRepository: shoppingListRepo,
		followRepository:       followRepo,
	}
}

// RegisterPublicRecipeRoutes registers routes readable without authentication
func (h *RecipeHandler) RegisterPublicRecipeRoutes(g *echo.Group) {
	g.GET("/recipes", h.ListRecipes)
	g.GET("/recipes/:id", h.GetRecipe)
}

// RegisterRecipeRoutes registers authenticated recipe routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("/recipes", h.CreateRecipe)
	g.PATCH("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
	g.POST("/recipes/:id/favorite", h.AddFavorite)
	g.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	g.POST("/recipes/:id/shopping_cart", h.AddToShoppingCart)
	g.DELETE("/recipes/:id/shopping_cart", h.RemoveFromShoppingCart)
	g.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
}

// ListRecipes returns recipes filtered by author, tag slugs and the
// viewer's interest sets. Interest-set filters for an anonymous viewer
// yield an empty list rather than an error.
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	var filter models.RecipeFilter
	if author := c.QueryParam("author"); author != "" {
		id, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		authorID := uint(id)
		filter.AuthorID = &authorID
	}
	filter.TagSlugs = c.QueryParams()["tags"]

	anonymousScoped := false
	for _, p := range []struct {
		name string
		dest **bool
	}{
		{"is_favorited", &filter.IsFavorited},
		{"is_in_shopping_cart", &filter.IsInShoppingCart},
	} {
		switch c.QueryParam(p.name) {
		case "":
		case "1":
			v := true
			*p.dest = &v
			anonymousScoped = anonymousScoped || viewerID == 0
		case "0":
			v := false
			*p.dest = &v
			anonymousScoped = anonymousScoped || viewerID == 0
		default:
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s value, expected '0' or '1'", p.name))
		}
	}
	// Anonymous viewers have no interest sets to filter on.
	if anonymousScoped {
		return c.JSON(http.StatusOK, []models.RecipeResponse{})
	}

	recipes, err := h.recipeRepository.ListRecipes(filter, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses, err := h.buildRecipeResponses(viewerID, recipes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}
	recipe, err := h.recipeRepository.GetRecipeByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp, err := h.buildRecipeResponse(getUserIDFromContext(c), recipe)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateRecipe creates a recipe owned by the authenticated user
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipeService.CreateRecipe(currentUserID, &req)
	if err != nil {
		return serviceHTTPError(err)
	}

	resp, err := h.buildRecipeResponse(currentUserID, recipe)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}

// UpdateRecipe replaces the recipe's fields and its full ingredient set
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	var req models.RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipeService.UpdateRecipe(currentUserID, uint(id), &req)
	if err != nil {
		return serviceHTTPError(err)
	}

	resp, err := h.buildRecipeResponse(currentUserID, recipe)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteRecipe removes a recipe; only its author may do so
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	if err := h.recipeService.DeleteRecipe(currentUserID, uint(id)); err != nil {
		return serviceHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFavorite puts a recipe into the user's favorites
func (h *RecipeHandler) AddFavorite(c echo.Context) error {
	return h.addToInterestSet(c, func(userID, recipeID uint) error {
		return h.favoriteRepository.AddFavorite(&models.FavoriteRecipe{UserID: userID, RecipeID: recipeID})
	}, "Recipe already in favorites")
}

// RemoveFavorite removes a recipe from the user's favorites
func (h *RecipeHandler) RemoveFavorite(c echo.Context) error {
	return h.removeFromInterestSet(c, h.favoriteRepository.RemoveFavorite, "Recipe is not in favorites")
}

// AddToShoppingCart puts a recipe into the user's shopping list
func (h *RecipeHandler) AddToShoppingCart(c echo.Context) error {
	return h.addToInterestSet(c, func(userID, recipeID uint) error {
		return h.shoppingListRepository.AddToShoppingList(&models.ShoppingList{UserID: userID, RecipeID: recipeID})
	}, "Recipe already in shopping list")
}

// RemoveFromShoppingCart removes a recipe from the user's shopping list
func (h *RecipeHandler) RemoveFromShoppingCart(c echo.Context) error {
	return h.removeFromInterestSet(c, h.shoppingListRepository.RemoveFromShoppingList, "Recipe is not in shopping list")
}

// DownloadShoppingCart returns the consolidated ingredient list of the
// user's shopping-listed recipes as a text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	totals, err := h.shoppingListService.Aggregate(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	report := service.FormatReport(totals)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", shoppingListFilename))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// addToInterestSet handles the shared add semantics of favorites and the
// shopping list: recipe must exist, duplicate membership is a client error
// resolved by the storage-level unique index.
func (h *RecipeHandler) addToInterestSet(c echo.Context, add func(userID, recipeID uint) error, dupMessage string) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}
	recipe, err := h.recipeRepository.GetRecipeByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := add(currentUserID, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusBadRequest, dupMessage)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, newShortRecipeResponse(recipe))
}

func (h *RecipeHandler) removeFromInterestSet(c echo.Context, remove func(userID, recipeID uint) error, missingMessage string) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}
	if _, err := h.recipeRepository.GetRecipeByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := remove(currentUserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, missingMessage)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// buildRecipeResponse annotates a single recipe for the viewer.
func (h *RecipeHandler) buildRecipeResponse(viewerID uint, recipe *models.Recipe) (models.RecipeResponse, error) {
	isSubscribed, err := h.followRepository.IsFollowing(viewerID, recipe.AuthorID)
	if err != nil {
		return models.RecipeResponse{}, err
	}
	isFavorited, err := h.favoriteRepository.IsFavorited(viewerID, recipe.ID)
	if err != nil {
		return models.RecipeResponse{}, err
	}
	isInCart, err := h.shoppingListRepository.IsInShoppingList(viewerID, recipe.ID)
	if err != nil {
		return models.RecipeResponse{}, err
	}
	return newRecipeResponse(recipe, isSubscribed, isFavorited, isInCart), nil
}

// buildRecipeResponses annotates a listing with three batched lookups
// instead of three queries per recipe.
func (h *RecipeHandler) buildRecipeResponses(viewerID uint, recipes []models.Recipe) ([]models.RecipeResponse, error) {
	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	favorited, err := h.favoriteRepository.GetFavoriteFlags(viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := h.shoppingListRepository.GetShoppingListFlags(viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := h.followRepository.GetFollowingFlags(viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]models.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		responses = append(responses, newRecipeResponse(r, subscribed[r.AuthorID], favorited[r.ID], inCart[r.ID]))
	}
	return responses, nil
}
