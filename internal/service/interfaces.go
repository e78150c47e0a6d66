package service

import (
	"context"

	"github.com/pageza/recipemanager/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	AddRecipe(ctx context.Context, req *types.RecipeRequest) (*types.Recipe, error)
	FetchAllRecipes(ctx context.Context) (*types.RecipeResponse, error)
	FetchRecipeByID(ctx context.Context, id uint) (*types.Recipe, error)
	UpdateRecipe(ctx context.Context, id uint, req *types.RecipeRequest) (*types.Recipe, error)
	RemoveRecipe(ctx context.Context, id uint) error
	SearchRecipes(ctx context.Context, filter types.SearchFilter, page types.PageRequest) (*types.RecipeResponse, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}
