package models

// Ingredient is immutable reference data. The same name may exist with
// different measurement units, so uniqueness is on the (name, unit) pair.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"uniqueIndex:idx_name_unit;size:200"`
	MeasurementUnit string `json:"measurement_unit" gorm:"uniqueIndex:idx_name_unit;size:200"`
}

// IngredientTotal is one row of the consolidated shopping list: a
// (name, unit) group with its summed amount across recipes.
type IngredientTotal struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
