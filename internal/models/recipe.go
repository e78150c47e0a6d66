package models

import (
	"strings"
	"time"
)

// FoodCategory classifies a recipe
type FoodCategory string

const (
	FoodCategoryVeg     FoodCategory = "VEG"
	FoodCategoryNonVeg  FoodCategory = "NON_VEG"
	FoodCategoryUnknown FoodCategory = "UNKNOWN"
)

// FoodCategories lists every valid category in declaration order
var FoodCategories = []FoodCategory{FoodCategoryVeg, FoodCategoryNonVeg, FoodCategoryUnknown}

// ParseFoodCategory parses s case-insensitively. ok is false for blank or
// unrecognised input.
func ParseFoodCategory(s string) (FoodCategory, bool) {
	candidate := FoodCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range FoodCategories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the declared categories
func (c FoodCategory) Valid() bool {
	_, ok := ParseFoodCategory(string(c))
	return ok
}

// Recipe is the aggregate root. Ingredients are owned by the recipe and are
// created, replaced and deleted with it.
type Recipe struct {
	ID           uint          `gorm:"primaryKey" json:"recipeId"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
	Name         string        `gorm:"size:255;not null;uniqueIndex" json:"name"`
	FoodCategory *FoodCategory `gorm:"size:16;index" json:"foodCategory"`
	Servings     int           `gorm:"not null" json:"servings"`
	Ingredients  []Ingredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions string        `gorm:"type:text" json:"instructions"`
}

// Ingredient is a named child row of a Recipe
type Ingredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"not null;index" json:"-"`
	Name     string `gorm:"size:255;not null;index" json:"ingredientName"`
}

// IngredientNames returns the ingredient names in order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	if r.FoodCategory != nil {
		fc := *r.FoodCategory
		out.FoodCategory = &fc
	}
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	return &out
}
