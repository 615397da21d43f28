package models

// Tag is reference data attached to recipes.
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:200"`
	Color string `json:"color" gorm:"uniqueIndex;size:7"` // HEX color code
	Slug  string `json:"slug" gorm:"uniqueIndex;size:200"`
}
