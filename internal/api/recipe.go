package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/middleware"
	"github.com/pageza/recipemanager/backend/internal/service"
	"github.com/pageza/recipemanager/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}

	writes := recipes.Group("")
	if h.rateLimiter != nil {
		writes.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		writes.POST("", h.CreateRecipe)
		writes.PUT("/:id", h.UpdateRecipe)
		writes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	resp, err := h.recipeService.FetchAllRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.FetchRecipeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidRequest("malformed recipe body"))
		return
	}

	recipe, err := h.recipeService.AddRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidRequest("malformed recipe body"))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipeService.RemoveRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	filter, err := bindSearchFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var page types.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, apperr.InvalidRequest("page and size must be integers"))
		return
	}

	resp, err := h.recipeService.SearchRecipes(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func recipeID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidRequest("recipe id must be a positive integer")
	}
	return uint(id), nil
}

// bindSearchFilter reads the filter from the query string. Blank values are
// unset; list parameters may be repeated or comma separated.
func bindSearchFilter(c *gin.Context) (types.SearchFilter, error) {
	filter := types.SearchFilter{
		FoodCategory:             strings.TrimSpace(c.Query("foodCategory")),
		IncludedIngredients:      queryList(c, "includedIngredients"),
		ExcludedIngredients:      queryList(c, "excludedIngredients"),
		SearchTextInInstructions: c.Query("searchTextInInstructions"),
	}

	if name := c.Query("name"); strings.TrimSpace(name) != "" {
		filter.Name = &name
	}

	if raw := strings.TrimSpace(c.Query("servings")); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil {
			return types.SearchFilter{}, apperr.InvalidRequest("servings must be an integer")
		}
		filter.Servings = &servings
	}

	return filter, nil
}

func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
