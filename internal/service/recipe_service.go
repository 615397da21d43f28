package service

import (
	"errors"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
)

var (
	ErrNoIngredients       = errors.New("at least one ingredient required")
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrInvalidAmount       = errors.New("ingredient amount must be a positive integer")
	ErrNoTags              = errors.New("at least one tag required")
	ErrUnknownTag          = errors.New("tag does not exist")
	ErrUnknownIngredient   = errors.New("ingredient does not exist")
	ErrInvalidCookingTime  = errors.New("cooking time must be between 1 and 360 minutes")
	ErrNotAuthor           = errors.New("only the author can modify the recipe")
)

// Cooking time is bounded to six hours.
const maxCookingTime = 360

// RecipeService validates recipe composition and persists it atomically.
// Validation runs before any write, so a failed submission leaves the
// recipe's existing ingredient links untouched.
type RecipeService interface {
	CreateRecipe(authorID uint, req *models.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(userID, recipeID uint, req *models.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(userID, recipeID uint) error
}

type recipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
}

func NewRecipeService(recipeRepo repositories.RecipeRepository, tagRepo repositories.TagRepository, ingredientRepo repositories.IngredientRepository) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (s *recipeService) CreateRecipe(authorID uint, req *models.RecipeRequest) (*models.Recipe, error) {
	tags, links, err := s.validateComposition(req)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepo.CreateRecipe(recipe, tags, links); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetRecipeByID(recipe.ID)
}

func (s *recipeService) UpdateRecipe(userID, recipeID uint, req *models.RecipeRequest) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	tags, links, err := s.validateComposition(req)
	if err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Image = req.Image
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if err := s.recipeRepo.UpdateRecipe(recipe, tags, links); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetRecipeByID(recipeID)
}

func (s *recipeService) DeleteRecipe(userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetRecipeByID(recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotAuthor
	}
	return s.recipeRepo.DeleteRecipe(recipeID)
}

// validateComposition checks the submitted ingredient and tag sets against
// the catalog and resolves them into persistable rows.
func (s *recipeService) validateComposition(req *models.RecipeRequest) ([]models.Tag, []models.RecipeIngredient, error) {
	if len(req.Ingredients) == 0 {
		return nil, nil, ErrNoIngredients
	}

	seen := make(map[uint]bool, len(req.Ingredients))
	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		if seen[in.ID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[in.ID] = true
		if in.Amount < 1 {
			return nil, nil, ErrInvalidAmount
		}
		ingredientIDs = append(ingredientIDs, in.ID)
	}

	if req.CookingTime < 1 || req.CookingTime > maxCookingTime {
		return nil, nil, ErrInvalidCookingTime
	}

	if len(req.Tags) == 0 {
		return nil, nil, ErrNoTags
	}
	tagIDs := make([]uint, 0, len(req.Tags))
	seenTags := make(map[uint]bool, len(req.Tags))
	for _, id := range req.Tags {
		if !seenTags[id] {
			seenTags[id] = true
			tagIDs = append(tagIDs, id)
		}
	}
	tags, err := s.tagRepo.GetTagsByIDs(tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, ErrUnknownTag
	}

	ingredients, err := s.ingredientRepo.GetIngredientsByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, ErrUnknownIngredient
	}

	links := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		links = append(links, models.RecipeIngredient{
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
	}
	return tags, links, nil
}
