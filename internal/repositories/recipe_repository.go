package repositories

import (
	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(recipe *models.Recipe, tags []models.Tag, links []models.RecipeIngredient) error
	UpdateRecipe(recipe *models.Recipe, tags []models.Tag, links []models.RecipeIngredient) error
	GetRecipeByID(id uint) (*models.Recipe, error)
	ListRecipes(filter models.RecipeFilter, viewerID uint) ([]models.Recipe, error)
	ListRecipesByAuthor(authorID uint) ([]models.Recipe, error)
	CountRecipesByAuthor(authorID uint) (int64, error)
	DeleteRecipe(id uint) error
}

// PostgresRecipeRepository implements RecipeRepository for PostgreSQL
type PostgresRecipeRepository struct {
	db *gorm.DB
}

// NewPostgresRecipeRepository creates a new PostgresRecipeRepository
func NewPostgresRecipeRepository(db *gorm.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

// CreateRecipe persists the recipe, its tag associations and its ingredient
// links in a single transaction, so a reader never observes a recipe without
// ingredients.
func (r *PostgresRecipeRepository) CreateRecipe(recipe *models.Recipe, tags []models.Tag, links []models.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		for i := range links {
			links[i].RecipeID = recipe.ID
		}
		return tx.Create(&links).Error
	})
}

// UpdateRecipe replaces the recipe's fields, tags and full ingredient set
// atomically: existing links are cleared and the submitted set inserted in
// the same transaction.
func (r *PostgresRecipeRepository) UpdateRecipe(recipe *models.Recipe, tags []models.Tag, links []models.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(recipe).
			Select("Name", "Image", "Text", "CookingTime").
			Updates(recipe).Error
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ID = 0
			links[i].RecipeID = recipe.ID
		}
		return tx.Create(&links).Error
	})
}

func (r *PostgresRecipeRepository) GetRecipeByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns recipes newest first, narrowed by the filter. The
// interest-set filters are resolved against the viewer's memberships; the
// handler guarantees viewerID is non-zero when they are set.
func (r *PostgresRecipeRepository) ListRecipes(filter models.RecipeFilter, viewerID uint) ([]models.Recipe, error) {
	q := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("created_at DESC, id DESC")

	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if filter.IsFavorited != nil {
		favorited := r.db.Table("favorite_recipes").
			Select("recipe_id").
			Where("user_id = ?", viewerID)
		if *filter.IsFavorited {
			q = q.Where("recipes.id IN (?)", favorited)
		} else {
			q = q.Where("recipes.id NOT IN (?)", favorited)
		}
	}
	if filter.IsInShoppingCart != nil {
		carted := r.db.Table("shopping_lists").
			Select("recipe_id").
			Where("user_id = ?", viewerID)
		if *filter.IsInShoppingCart {
			q = q.Where("recipes.id IN (?)", carted)
		} else {
			q = q.Where("recipes.id NOT IN (?)", carted)
		}
	}

	var recipes []models.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *PostgresRecipeRepository) ListRecipesByAuthor(authorID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC, id DESC").Find(&recipes).Error
	return recipes, err
}

func (r *PostgresRecipeRepository) CountRecipesByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// DeleteRecipe removes the recipe. Ingredient links, tag associations and
// interest-set memberships go with it via the FK cascades; the link and
// membership deletes are issued explicitly as well so stores that were
// migrated without FK enforcement stay consistent.
func (r *PostgresRecipeRepository) DeleteRecipe(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingList{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
