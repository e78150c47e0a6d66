package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFoodCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   FoodCategory
		wantOK bool
	}{
		{"VEG", FoodCategoryVeg, true},
		{"veg", FoodCategoryVeg, true},
		{" non_veg ", FoodCategoryNonVeg, true},
		{"Unknown", FoodCategoryUnknown, true},
		{"vegan", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFoodCategory(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipeClone(t *testing.T) {
	veg := FoodCategoryVeg
	r := &Recipe{
		ID:           7,
		Name:         "recipe1",
		FoodCategory: &veg,
		Servings:     1,
		Ingredients:  []Ingredient{{ID: 1, RecipeID: 7, Name: "ingredient1"}},
	}

	c := r.Clone()
	c.Ingredients[0].Name = "changed"
	*c.FoodCategory = FoodCategoryNonVeg

	assert.Equal(t, "ingredient1", r.Ingredients[0].Name)
	assert.Equal(t, FoodCategoryVeg, *r.FoodCategory)
	assert.Equal(t, []string{"ingredient1"}, r.IngredientNames())
	assert.Nil(t, (*Recipe)(nil).Clone())
}
