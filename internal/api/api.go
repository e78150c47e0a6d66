// Package api is the HTTP presentation layer of the recipe service.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemanager/backend/internal/middleware"
	"github.com/pageza/recipemanager/backend/internal/service"
)

// Deps are the collaborators the handlers need. Limiter and Health may be nil.
type Deps struct {
	Recipes service.IRecipeService
	Auth    service.IAuthService
	Limiter *middleware.RateLimiter
	Health  func(ctx context.Context) error
}

// SetupAPI registers every route under /api/v1
func SetupAPI(router *gin.Engine, deps Deps) {
	v1 := router.Group("/api/v1")

	NewHealthHandler(deps.Health).RegisterRoutes(v1)
	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Auth, deps.Limiter).RegisterRoutes(v1)
}
