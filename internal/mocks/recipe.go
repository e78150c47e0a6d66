package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipemanager/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// AddRecipe mocks the AddRecipe method
func (m *MockRecipeService) AddRecipe(ctx context.Context, req *types.RecipeRequest) (*types.Recipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// FetchAllRecipes mocks the FetchAllRecipes method
func (m *MockRecipeService) FetchAllRecipes(ctx context.Context) (*types.RecipeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

// FetchRecipeByID mocks the FetchRecipeByID method
func (m *MockRecipeService) FetchRecipeByID(ctx context.Context, id uint) (*types.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uint, req *types.RecipeRequest) (*types.Recipe, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// RemoveRecipe mocks the RemoveRecipe method
func (m *MockRecipeService) RemoveRecipe(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, filter types.SearchFilter, page types.PageRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}
