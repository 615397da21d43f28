package repositories

import (
	"strings"

	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository defines the interface for the ingredient catalog
type IngredientRepository interface {
	ListIngredients(namePrefix string) ([]models.Ingredient, error)
	GetIngredientByID(id uint) (*models.Ingredient, error)
	GetIngredientsByIDs(ids []uint) ([]models.Ingredient, error)
	UpsertIngredients(ingredients []models.Ingredient) error
}

// PostgresIngredientRepository implements IngredientRepository for PostgreSQL
type PostgresIngredientRepository struct {
	db *gorm.DB
}

func NewPostgresIngredientRepository(db *gorm.DB) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{db: db}
}

// ListIngredients returns the catalog, optionally narrowed to names starting
// with the given prefix (case-insensitive).
func (r *PostgresIngredientRepository) ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	q := r.db.Order("name")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (r *PostgresIngredientRepository) GetIngredientByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *PostgresIngredientRepository) GetIngredientsByIDs(ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// UpsertIngredients inserts catalog rows, silently skipping (name, unit)
// pairs that already exist. Used by the bulk CSV import.
func (r *PostgresIngredientRepository) UpsertIngredients(ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredients).Error
}
