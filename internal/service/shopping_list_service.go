package service

import (
	"fmt"
	"strings"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
)

// ShoppingListService produces the consolidated ingredient list for a user's
// shopping-listed recipes.
type ShoppingListService interface {
	Aggregate(userID uint) ([]models.IngredientTotal, error)
}

type shoppingListService struct {
	shoppingListRepo repositories.ShoppingListRepository
}

func NewShoppingListService(shoppingListRepo repositories.ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepo: shoppingListRepo}
}

// Aggregate returns one (name, unit, total amount) record per distinct
// ingredient name and measurement unit across every recipe in the user's
// shopping list, ordered by name then unit. An empty shopping list yields
// an empty result, not an error.
func (s *shoppingListService) Aggregate(userID uint) ([]models.IngredientTotal, error) {
	return s.shoppingListRepo.SumIngredients(userID)
}

// FormatReport renders aggregated totals as the downloadable text artifact:
// one "{name} ({unit}) {amount}" line per record, no trailing newline.
func FormatReport(totals []models.IngredientTotal) string {
	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("%s (%s) %d", t.Name, t.MeasurementUnit, t.Amount))
	}
	return strings.Join(lines, "\n")
}
