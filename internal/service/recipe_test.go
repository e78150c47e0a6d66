package service_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/mocks"
	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/search"
	"github.com/pageza/recipemanager/backend/internal/service"
	"github.com/pageza/recipemanager/backend/internal/store"
	"github.com/pageza/recipemanager/backend/internal/types"
)

func setupRecipeService(t *testing.T) *service.RecipeService {
	t.Helper()
	return service.NewRecipeService(store.NewMemoryStore(), search.DefaultPageDefaults)
}

func recipeRequest(name string, servings int, ingredients ...string) *types.RecipeRequest {
	req := &types.RecipeRequest{
		Name:         name,
		FoodCategory: "VEG",
		Servings:     servings,
		Instructions: "instruction for " + name,
	}
	for _, ing := range ingredients {
		req.Ingredients = append(req.Ingredients, types.IngredientRequest{Name: ing})
	}
	return req
}

func strPtr(s string) *string { return &s }

func TestAddRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	got, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1, "ingredient1", "ingredient2"))
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.Equal(t, "recipe1", got.Name)
	require.NotNil(t, got.FoodCategory)
	assert.Equal(t, "VEG", *got.FoodCategory)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "ingredient1", got.Ingredients[0].Name)
	assert.NotZero(t, got.Ingredients[0].ID)
}

func TestAddRecipeValidation(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *types.RecipeRequest
	}{
		{"nil request", nil},
		{"empty name", recipeRequest("", 1)},
		{"blank name", recipeRequest("   ", 1)},
		{"zero servings", recipeRequest("r", 0)},
		{"unknown category", &types.RecipeRequest{Name: "r", Servings: 1, FoodCategory: "vegan"}},
		{"blank ingredient", recipeRequest("r", 1, " ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddRecipe(ctx, tt.req)
			assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
		})
	}

	all, err := svc.FetchAllRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all.Recipes)
}

func TestAddRecipeDuplicateName(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1))
	require.NoError(t, err)

	_, err = svc.AddRecipe(ctx, recipeRequest("recipe1", 2))
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
	assert.ErrorIs(t, err, store.ErrDuplicateName)
	assert.Contains(t, err.Error(), "recipe name already exists")
}

func TestAddRecipeConcurrentDuplicates(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddRecipe(ctx, recipeRequest("same", 1)); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}

func TestFetchAllRecipes(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	resp, err := svc.FetchAllRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.NotNil(t, resp.Recipes)
	assert.Empty(t, resp.Recipes)
	assert.Nil(t, resp.Page)

	_, err = svc.AddRecipe(ctx, recipeRequest("recipe1", 1))
	require.NoError(t, err)
	_, err = svc.AddRecipe(ctx, recipeRequest("recipe2", 2))
	require.NoError(t, err)

	resp, err = svc.FetchAllRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 2)
}

func TestFetchRecipeByID(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	added, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1, "salt"))
	require.NoError(t, err)

	got, err := svc.FetchRecipeByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, *added, *got)

	_, err = svc.FetchRecipeByID(ctx, added.ID+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	added, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1, "ingredient1"))
	require.NoError(t, err)

	update := &types.RecipeRequest{
		Name:         "recipe1 updated",
		Servings:     6,
		Instructions: "new instructions",
		Ingredients:  []types.IngredientRequest{{Name: "ingredient9"}},
	}
	got, err := svc.UpdateRecipe(ctx, added.ID, update)
	require.NoError(t, err)

	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "recipe1 updated", got.Name)
	assert.Nil(t, got.FoodCategory)
	assert.Equal(t, 6, got.Servings)
	assert.Equal(t, "new instructions", got.Instructions)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "ingredient9", got.Ingredients[0].Name)

	// keeping its own name is fine
	_, err = svc.UpdateRecipe(ctx, added.ID, update)
	assert.NoError(t, err)
}

func TestUpdateRecipeErrors(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	first, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1))
	require.NoError(t, err)
	_, err = svc.AddRecipe(ctx, recipeRequest("recipe2", 1))
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, 999, recipeRequest("x", 1))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.UpdateRecipe(ctx, first.ID, recipeRequest("recipe2", 1))
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = svc.UpdateRecipe(ctx, first.ID, recipeRequest("", 1))
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestRemoveRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	added, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1, "salt"))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveRecipe(ctx, added.ID))

	_, err = svc.FetchRecipeByID(ctx, added.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.RemoveRecipe(ctx, added.ID), apperr.ErrNotFound)
}

func TestSearchRecipes(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.AddRecipe(ctx, &types.RecipeRequest{
		Name: "recipe1", FoodCategory: "VEG", Servings: 1, Instructions: "instruction1",
		Ingredients: []types.IngredientRequest{{Name: "ingredient1"}, {Name: "ingredient2"}},
	})
	require.NoError(t, err)
	_, err = svc.AddRecipe(ctx, &types.RecipeRequest{
		Name: "recipe2", FoodCategory: "UNKNOWN", Servings: 2, Instructions: "instruction2",
		Ingredients: []types.IngredientRequest{{Name: "ingredient3"}, {Name: "ingredient4"}},
	})
	require.NoError(t, err)

	resp, err := svc.SearchRecipes(ctx, types.SearchFilter{
		Name:                     strPtr("recipe1"),
		FoodCategory:             "VEG",
		IncludedIngredients:      []string{"ingredient1"},
		ExcludedIngredients:      []string{"ingredient5"},
		SearchTextInInstructions: "INSTRUCTION1",
	}, types.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "recipe1", resp.Recipes[0].Name)
	assert.Equal(t, &types.PageInfo{Number: 0, Size: 10, TotalElements: 1, TotalPages: 1}, resp.Page)

	// default ordering is id descending
	resp, err = svc.SearchRecipes(ctx, types.SearchFilter{}, types.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "recipe2", resp.Recipes[0].Name)

	resp, err = svc.SearchRecipes(ctx, types.SearchFilter{}, types.PageRequest{Size: 1, Page: 1, Sort: "name", Direction: "asc"})
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "recipe2", resp.Recipes[0].Name)
	assert.Equal(t, 2, resp.Page.TotalPages)

	resp, err = svc.SearchRecipes(ctx, types.SearchFilter{ExcludedIngredients: []string{"ingredient1", "ingredient3"}}, types.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Recipes)
	assert.Equal(t, 0, resp.Page.TotalPages)

	_, err = svc.SearchRecipes(ctx, types.SearchFilter{}, types.PageRequest{Sort: "instructions"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestStorageFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	st := new(mocks.MockRecipeStore)
	svc := service.NewRecipeService(st, search.DefaultPageDefaults)
	failure := apperr.Storage("list recipes", errors.New("connection refused"))

	st.On("ListAll", ctx).Return(nil, failure)
	st.On("FindByName", ctx, "recipe1").Return(nil, nil)
	st.On("Insert", ctx, mock.AnythingOfType("*models.Recipe")).Return(nil, failure)
	st.On("FindPage", ctx, mock.Anything, mock.Anything).Return(nil, int64(0), failure)

	_, err := svc.FetchAllRecipes(ctx)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	_, err = svc.AddRecipe(ctx, recipeRequest("recipe1", 1))
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	_, err = svc.SearchRecipes(ctx, types.SearchFilter{}, types.PageRequest{})
	assert.ErrorIs(t, err, apperr.ErrStorage)

	st.AssertExpectations(t)
}

func TestAddRecipeTranslatesConstraintViolation(t *testing.T) {
	ctx := context.Background()
	st := new(mocks.MockRecipeStore)
	svc := service.NewRecipeService(st, search.DefaultPageDefaults)

	// the name check passes but a concurrent insert wins the unique index
	st.On("FindByName", ctx, "recipe1").Return(nil, nil)
	st.On("Insert", ctx, mock.MatchedBy(func(r *models.Recipe) bool { return r.ID == 0 })).Return(nil, store.ErrDuplicateName)

	_, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1))
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	st.AssertExpectations(t)
}

func TestSearchRecipesRejectsOverflowingPage(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.AddRecipe(ctx, recipeRequest("recipe1", 1, "ingredient1"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = svc.SearchRecipes(ctx, types.SearchFilter{}, types.PageRequest{Page: math.MaxInt / 5, Size: 10})
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}
