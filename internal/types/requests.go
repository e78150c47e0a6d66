package types

// IngredientRequest is one ingredient in a create or update body
type IngredientRequest struct {
	Name string `json:"ingredientName" yaml:"name"`
}

// RecipeRequest carries the caller supplied fields of a recipe. It is used
// for both create and update; an update replaces every field.
type RecipeRequest struct {
	Name         string              `json:"name" yaml:"name"`
	FoodCategory string              `json:"foodCategory" yaml:"foodCategory"`
	Servings     int                 `json:"servings" yaml:"servings"`
	Ingredients  []IngredientRequest `json:"ingredients" yaml:"ingredients"`
	Instructions string              `json:"instructions" yaml:"instructions"`
}

// SearchFilter is a sparse set of search criteria. Every field is optional
// and all set fields must hold for a recipe to match.
type SearchFilter struct {
	Name                     *string  `json:"name,omitempty"`
	FoodCategory             string   `json:"foodCategory,omitempty"`
	Servings                 *int     `json:"servings,omitempty"`
	IncludedIngredients      []string `json:"includedIngredients,omitempty"`
	ExcludedIngredients      []string `json:"excludedIngredients,omitempty"`
	SearchTextInInstructions string   `json:"searchTextInInstructions,omitempty"`
}

// PageRequest is the raw paging input of a search. Zero values fall back to
// the configured defaults.
type PageRequest struct {
	Page      int    `form:"page" json:"page"`
	Size      int    `form:"size" json:"size"`
	Sort      string `form:"sort" json:"sort"`
	Direction string `form:"direction" json:"direction"`
}

// LoginRequest represents the request body for obtaining a token
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}
