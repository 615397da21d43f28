package repositories

import (
	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
)

// ShoppingListRepository defines the interface for shopping-list operations
type ShoppingListRepository interface {
	AddToShoppingList(entry *models.ShoppingList) error
	RemoveFromShoppingList(userID, recipeID uint) error
	IsInShoppingList(userID, recipeID uint) (bool, error)
	GetShoppingListFlags(userID uint, recipeIDs []uint) (map[uint]bool, error)
	GetShoppingListRecipeIDs(userID uint) ([]uint, error)
	SumIngredients(userID uint) ([]models.IngredientTotal, error)
}

// PostgresShoppingListRepository implements ShoppingListRepository
type PostgresShoppingListRepository struct {
	db *gorm.DB
}

func NewPostgresShoppingListRepository(db *gorm.DB) *PostgresShoppingListRepository {
	return &PostgresShoppingListRepository{db: db}
}

// AddToShoppingList inserts a membership. The unique index on
// (user_id, recipe_id) turns a concurrent duplicate into gorm.ErrDuplicatedKey.
func (r *PostgresShoppingListRepository) AddToShoppingList(entry *models.ShoppingList) error {
	return r.db.Create(entry).Error
}

func (r *PostgresShoppingListRepository) RemoveFromShoppingList(userID, recipeID uint) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.ShoppingList{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresShoppingListRepository) IsInShoppingList(userID, recipeID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.ShoppingList{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresShoppingListRepository) GetShoppingListFlags(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.ShoppingList{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *PostgresShoppingListRepository) GetShoppingListRecipeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ShoppingList{}).Where("user_id = ?", userID).Pluck("recipe_id", &ids).Error
	return ids, err
}

// SumIngredients consolidates the ingredient links of every recipe in the
// user's shopping list. Grouping is by (name, measurement unit), not by
// ingredient id: two catalog rows sharing the pair merge into one total.
// Ordering by name then unit keeps the output deterministic.
func (r *PostgresShoppingListRepository) SumIngredients(userID uint) ([]models.IngredientTotal, error) {
	var totals []models.IngredientTotal
	err := r.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_lists ON shopping_lists.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_lists.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&totals).Error
	return totals, err
}
