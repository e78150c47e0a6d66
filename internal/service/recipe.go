package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/search"
	"github.com/pageza/recipemanager/backend/internal/store"
	"github.com/pageza/recipemanager/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store store.RecipeStore
	pages search.PageDefaults
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.RecipeStore, pages search.PageDefaults) *RecipeService {
	return &RecipeService{
		store: s,
		pages: pages,
	}
}

// AddRecipe validates req and stores it as a new recipe
func (s *RecipeService) AddRecipe(ctx context.Context, req *types.RecipeRequest) (*types.Recipe, error) {
	recipe, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByName(ctx, recipe.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, store.ErrDuplicateName
	}

	stored, err := s.store.Insert(ctx, recipe)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "recipe added", "recipe_id", stored.ID, "name", stored.Name)
	out := toRecipe(stored)
	return &out, nil
}

// FetchAllRecipes returns every recipe. An empty store is not an error.
func (s *RecipeService) FetchAllRecipes(ctx context.Context) (*types.RecipeResponse, error) {
	recipes, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &types.RecipeResponse{
		Status:  http.StatusOK,
		Recipes: toRecipes(recipes),
	}, nil
}

// FetchRecipeByID retrieves a recipe by ID
func (s *RecipeService) FetchRecipeByID(ctx context.Context, id uint) (*types.Recipe, error) {
	recipe, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toRecipe(recipe)
	return &out, nil
}

// UpdateRecipe replaces every mutable field of the recipe. The id never
// changes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, req *types.RecipeRequest) (*types.Recipe, error) {
	recipe, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}

	owner, err := s.store.FindByName(ctx, recipe.Name)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != id {
		return nil, store.ErrDuplicateName
	}

	stored, err := s.store.Replace(ctx, id, recipe)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "recipe updated", "recipe_id", id)
	out := toRecipe(stored)
	return &out, nil
}

// RemoveRecipe deletes a recipe and its ingredients
func (s *RecipeService) RemoveRecipe(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Info(ctx, "recipe removed", "recipe_id", id)
	return nil
}

// SearchRecipes returns one page of the recipes matching filter
func (s *RecipeService) SearchRecipes(ctx context.Context, filter types.SearchFilter, pageReq types.PageRequest) (*types.RecipeResponse, error) {
	page, err := search.NewPage(pageReq, s.pages)
	if err != nil {
		return nil, err
	}

	pred := search.Build(filter)
	log.Debug(ctx, "searching recipes", "predicate", pred.String(), "page", page.Index, "size", page.Size, "sort", page.Sort, "direction", page.Direction)

	recipes, total, err := s.store.FindPage(ctx, pred, page)
	if err != nil {
		return nil, err
	}

	return &types.RecipeResponse{
		Status:  http.StatusOK,
		Recipes: toRecipes(recipes),
		Page: &types.PageInfo{
			Number:        page.Index,
			Size:          page.Size,
			TotalElements: total,
			TotalPages:    int((total + int64(page.Size) - 1) / int64(page.Size)),
		},
	}, nil
}

// fromRequest validates req and converts it to a model without ids
func fromRequest(req *types.RecipeRequest) (*models.Recipe, error) {
	if req == nil {
		return nil, apperr.InvalidRequest("recipe must not be empty")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.InvalidRequest("recipe name must not be empty")
	}
	if req.Servings < 1 {
		return nil, apperr.InvalidRequest("servings must be at least 1")
	}

	recipe := &models.Recipe{
		Name:         req.Name,
		Servings:     req.Servings,
		Instructions: req.Instructions,
		Ingredients:  make([]models.Ingredient, 0, len(req.Ingredients)),
	}

	if strings.TrimSpace(req.FoodCategory) != "" {
		fc, ok := models.ParseFoodCategory(req.FoodCategory)
		if !ok {
			return nil, apperr.InvalidRequest(fmt.Sprintf("unknown food category %q", req.FoodCategory))
		}
		recipe.FoodCategory = &fc
	}

	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			return nil, apperr.InvalidRequest("ingredient name must not be empty")
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{Name: name})
	}

	return recipe, nil
}

func toRecipe(r *models.Recipe) types.Recipe {
	out := types.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Servings:     r.Servings,
		Instructions: r.Instructions,
		Ingredients:  make([]types.Ingredient, len(r.Ingredients)),
	}
	if r.FoodCategory != nil {
		fc := string(*r.FoodCategory)
		out.FoodCategory = &fc
	}
	for i, ing := range r.Ingredients {
		out.Ingredients[i] = types.Ingredient{ID: ing.ID, Name: ing.Name}
	}
	return out
}

func toRecipes(rs []*models.Recipe) []types.Recipe {
	out := make([]types.Recipe, len(rs))
	for i, r := range rs {
		out[i] = toRecipe(r)
	}
	return out
}
