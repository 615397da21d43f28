package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

func TestAddToShoppingListDuplicateFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")
	recipe := seedRecipe(t, db, user, "Pancakes")

	require.NoError(t, repo.AddToShoppingList(&models.ShoppingList{UserID: user.ID, RecipeID: recipe.ID}))

	err := repo.AddToShoppingList(&models.ShoppingList{UserID: user.ID, RecipeID: recipe.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRemoveFromShoppingListMissingMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")
	recipe := seedRecipe(t, db, user, "Pancakes")

	err := repo.RemoveFromShoppingList(user.ID, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSumIngredientsAcrossRecipes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")

	flour := seedIngredient(t, db, "Flour", "g")
	egg := seedIngredient(t, db, "Egg", "pcs")
	milk := seedIngredient(t, db, "Milk", "ml")

	pancakes := seedRecipe(t, db, user, "Pancakes")
	linkIngredient(t, db, pancakes, flour, 200)
	linkIngredient(t, db, pancakes, egg, 2)

	crepes := seedRecipe(t, db, user, "Crepes")
	linkIngredient(t, db, crepes, flour, 100)
	linkIngredient(t, db, crepes, milk, 50)

	require.NoError(t, repo.AddToShoppingList(&models.ShoppingList{UserID: user.ID, RecipeID: pancakes.ID}))
	require.NoError(t, repo.AddToShoppingList(&models.ShoppingList{UserID: user.ID, RecipeID: crepes.ID}))

	totals, err := repo.SumIngredients(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.IngredientTotal{
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Flour", MeasurementUnit: "g", Amount: 300},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 50},
	}, totals)
}

func TestSumIngredientsMergesSameNameAndUnit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")

	// The same name with different units stays in separate groups; the same
	// (name, unit) pair across recipes merges into one.
	saltA := seedIngredient(t, db, "Salt", "g")
	saltB := seedIngredient(t, db, "Salt", "kg")

	first := seedRecipe(t, db, user, "First")
	linkIngredient(t, db, first, saltA, 5)
	second := seedRecipe(t, db, user, "Second")
	linkIngredient(t, db, second, saltB, 1)
	third := seedRecipe(t, db, user, "Third")
	linkIngredient(t, db, third, saltA, 3)

	for _, r := range []*models.Recipe{first, second, third} {
		require.NoError(t, repo.AddToShoppingList(&models.ShoppingList{UserID: user.ID, RecipeID: r.ID}))
	}

	totals, err := repo.SumIngredients(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.IngredientTotal{
		{Name: "Salt", MeasurementUnit: "g", Amount: 8},
		{Name: "Salt", MeasurementUnit: "kg", Amount: 1},
	}, totals)
}

func TestSumIngredientsEmptyShoppingList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")

	totals, err := repo.SumIngredients(user.ID)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestSumIngredientsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresShoppingListRepository(db)
	user := seedUser(t, db, "user")
	other := seedUser(t, db, "other")

	flour := seedIngredient(t, db, "Flour", "g")
	recipe := seedRecipe(t, db, other, "Bread")
	linkIngredient(t, db, recipe, flour, 500)
	require.NoError(t, repo.AddToShoppingList(&models.ShoppingList{UserID: other.ID, RecipeID: recipe.ID}))

	totals, err := repo.SumIngredients(user.ID)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
