package types

// Ingredient is the response shape of an ingredient
type Ingredient struct {
	ID   uint   `json:"id"`
	Name string `json:"ingredientName"`
}

// Recipe represents a recipe in the system
type Recipe struct {
	ID           uint         `json:"recipeId"`
	Name         string       `json:"name"`
	FoodCategory *string      `json:"foodCategory"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
}

// PageInfo describes the window a search response covers
type PageInfo struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// RecipeResponse wraps a list of recipes with a status marker. Page is only
// set for search results.
type RecipeResponse struct {
	Status  int       `json:"status"`
	Recipes []Recipe  `json:"recipes"`
	Page    *PageInfo `json:"page,omitempty"`
}
