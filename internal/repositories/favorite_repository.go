package repositories

import (
	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite-recipe operations
type FavoriteRepository interface {
	AddFavorite(favorite *models.FavoriteRecipe) error
	RemoveFavorite(userID, recipeID uint) error
	IsFavorited(userID, recipeID uint) (bool, error)
	GetFavoriteFlags(userID uint, recipeIDs []uint) (map[uint]bool, error)
	GetFavoriteRecipeIDs(userID uint) ([]uint, error)
}

// PostgresFavoriteRepository implements FavoriteRepository
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// AddFavorite inserts a membership. The unique index on (user_id, recipe_id)
// turns a concurrent duplicate into gorm.ErrDuplicatedKey.
func (r *PostgresFavoriteRepository) AddFavorite(favorite *models.FavoriteRecipe) error {
	return r.db.Create(favorite).Error
}

func (r *PostgresFavoriteRepository) RemoveFavorite(userID, recipeID uint) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.FavoriteRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFavoriteRepository) IsFavorited(userID, recipeID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.FavoriteRecipe{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresFavoriteRepository) GetFavoriteFlags(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.FavoriteRecipe{}).
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

func (r *PostgresFavoriteRepository) GetFavoriteRecipeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.FavoriteRecipe{}).Where("user_id = ?", userID).Pluck("recipe_id", &ids).Error
	return ids, err
}
