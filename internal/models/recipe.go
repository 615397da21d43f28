package models

import "time"

// Recipe is an authored entity owning a set of (ingredient, amount) pairs
// and a set of tag references.
type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	AuthorID    uint               `json:"author_id" gorm:"index"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string             `json:"name" gorm:"size:200"`
	Image       string             `json:"image" gorm:"type:text"` // base64-encoded payload
	Text        string             `json:"text" gorm:"type:text"`
	CookingTime int                `json:"cooking_time"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	Ingredients []RecipeIngredient `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"-" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient links a recipe to an ingredient with its amount.
// A recipe cannot list the same ingredient twice.
type RecipeIngredient struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RecipeID     uint       `json:"recipe_id" gorm:"uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `json:"ingredient_id" gorm:"uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Amount       int        `json:"amount"`
}

// IngredientAmountInput is one (ingredient id, amount) pair of a submitted
// recipe ingredient set.
type IngredientAmountInput struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required"`
}

type RecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Image       string                  `json:"image" validate:"required"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"required"`
	Tags        []uint                  `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients"`
}

// RecipeIngredientResponse flattens the join row with its ingredient.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full viewer-relative recipe representation.
type RecipeResponse struct {
	ID                uint                       `json:"id"`
	Tags              []Tag                      `json:"tags"`
	Author            UserResponse               `json:"author"`
	Ingredients       []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	Name              string                     `json:"name"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       int                        `json:"cooking_time"`
}

// ShortRecipeResponse is the summary returned from interest-set actions
// and embedded in subscription listings.
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeFilter narrows recipe listings. Nil pointers mean "no filter".
type RecipeFilter struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
}
