package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/mocks"
	"github.com/pageza/recipemanager/backend/internal/search"
	"github.com/pageza/recipemanager/backend/internal/service"
	"github.com/pageza/recipemanager/backend/internal/store"
	"github.com/pageza/recipemanager/backend/internal/types"
)

const testToken = "test-token"

var authHeader = map[string]string{"Authorization": "Bearer " + testToken}

func setupRecipeRouter(t *testing.T) (*gin.Engine, *mocks.MockRecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recipes := new(mocks.MockRecipeService)
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", testToken).Return(&types.TokenClaims{Username: "admin", Role: "admin"}, nil)
	auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)

	router := gin.New()
	SetupAPI(router, Deps{Recipes: recipes, Auth: auth})
	return router, recipes
}

func do(router http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecipeRoutesRequireToken(t *testing.T) {
	router, recipes := setupRecipeRouter(t)

	w := do(router, http.MethodGet, "/api/v1/recipes", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes", map[string]string{"Authorization": "Bearer forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	recipes.AssertNotCalled(t, "FetchAllRecipes", mock.Anything)
}

func TestListRecipes(t *testing.T) {
	router, recipes := setupRecipeRouter(t)
	recipes.On("FetchAllRecipes", mock.Anything).Return(&types.RecipeResponse{
		Status:  http.StatusOK,
		Recipes: []types.Recipe{{ID: 1, Name: "recipe1", Servings: 1, Ingredients: []types.Ingredient{}}},
	}, nil)

	w := do(router, http.MethodGet, "/api/v1/recipes", authHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"status":200,"recipes":[{"recipeId":1,"name":"recipe1","foodCategory":null,"servings":1,"ingredients":[],"instructions":""}]}`,
		w.Body.String())
}

func TestGetRecipe(t *testing.T) {
	router, recipes := setupRecipeRouter(t)
	recipes.On("FetchRecipeByID", mock.Anything, uint(1)).Return(&types.Recipe{ID: 1, Name: "recipe1"}, nil)
	recipes.On("FetchRecipeByID", mock.Anything, uint(2)).Return(nil, store.ErrNotFound)

	w := do(router, http.MethodGet, "/api/v1/recipes/1", authHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/2", authHeader)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Contains(t, body.Error, "recipe not found by given id")
	assert.False(t, body.Timestamp.IsZero())

	w = do(router, http.MethodGet, "/api/v1/recipes/abc", authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipe(t *testing.T) {
	router, recipes := setupRecipeRouter(t)
	req := types.RecipeRequest{
		Name:        "recipe1",
		Servings:    2,
		Ingredients: []types.IngredientRequest{{Name: "salt"}},
	}
	recipes.On("AddRecipe", mock.Anything, &req).Return(&types.Recipe{ID: 5, Name: "recipe1", Servings: 2}, nil)

	w := postJSON(router, "/api/v1/recipes", req, authHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	var got types.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint(5), got.ID)
	recipes.AssertExpectations(t)
}

func TestCreateRecipeErrors(t *testing.T) {
	router, recipes := setupRecipeRouter(t)
	recipes.On("AddRecipe", mock.Anything, mock.MatchedBy(func(r *types.RecipeRequest) bool { return r.Name == "dup" })).
		Return(nil, store.ErrDuplicateName)
	recipes.On("AddRecipe", mock.Anything, mock.MatchedBy(func(r *types.RecipeRequest) bool { return r.Name == "down" })).
		Return(nil, apperr.Storage("insert recipe", errors.New("connection reset")))
	recipes.On("AddRecipe", mock.Anything, mock.MatchedBy(func(r *types.RecipeRequest) bool { return r.Name == "odd" })).
		Return(nil, errors.New("unexpected"))

	w := postJSON(router, "/api/v1/recipes", types.RecipeRequest{Name: "dup", Servings: 1}, authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "recipe name already exists")

	w = postJSON(router, "/api/v1/recipes", types.RecipeRequest{Name: "down", Servings: 1}, authHeader)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")

	w = postJSON(router, "/api/v1/recipes", types.RecipeRequest{Name: "odd", Servings: 1}, authHeader)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = postJSON(router, "/api/v1/recipes", "not an object", authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	router, recipes := setupRecipeRouter(t)
	recipes.On("UpdateRecipe", mock.Anything, uint(3), mock.AnythingOfType("*types.RecipeRequest")).
		Return(&types.Recipe{ID: 3, Name: "renamed"}, nil)
	recipes.On("RemoveRecipe", mock.Anything, uint(3)).Return(nil)
	recipes.On("RemoveRecipe", mock.Anything, uint(4)).Return(store.ErrNotFound)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/recipes/3",
		jsonBody(t, types.RecipeRequest{Name: "renamed", Servings: 1}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"renamed"`)

	w = do(router, http.MethodDelete, "/api/v1/recipes/3", authHeader)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodDelete, "/api/v1/recipes/4", authHeader)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRecipesBindsQuery(t *testing.T) {
	router, recipes := setupRecipeRouter(t)

	name := "recipe1"
	servings := 2
	wantFilter := types.SearchFilter{
		Name:                     &name,
		FoodCategory:             "VEG",
		Servings:                 &servings,
		IncludedIngredients:      []string{"a", "b", "c"},
		ExcludedIngredients:      []string{"d"},
		SearchTextInInstructions: "oven",
	}
	wantPage := types.PageRequest{Page: 1, Size: 5, Sort: "name", Direction: "asc"}
	recipes.On("SearchRecipes", mock.Anything, wantFilter, wantPage).
		Return(&types.RecipeResponse{Status: http.StatusOK, Recipes: []types.Recipe{}, Page: &types.PageInfo{Number: 1, Size: 5}}, nil)

	w := do(router, http.MethodGet,
		"/api/v1/recipes/search?name=recipe1&foodCategory=VEG&servings=2"+
			"&includedIngredients=a,b&includedIngredients=c&excludedIngredients=d"+
			"&searchTextInInstructions=oven&page=1&size=5&sort=name&direction=asc",
		authHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":{"number":1,"size":5`)
	recipes.AssertExpectations(t)
}

func TestSearchRecipesRejectsBadNumbers(t *testing.T) {
	router, recipes := setupRecipeRouter(t)

	w := do(router, http.MethodGet, "/api/v1/recipes/search?servings=two", authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/search?page=first", authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	recipes.AssertNotCalled(t, "SearchRecipes", mock.Anything, mock.Anything, mock.Anything)
}

// TestRecipeLifecycle drives the real service and an in-memory store
// through the HTTP layer.
func TestRecipeLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := service.NewAuthService("admin", string(hash), "secret", time.Hour)
	router := gin.New()
	SetupAPI(router, Deps{
		Recipes: service.NewRecipeService(store.NewMemoryStore(), search.DefaultPageDefaults),
		Auth:    auth,
	})

	w := postJSON(router, "/api/v1/auth/login", types.LoginRequest{Username: "admin", Password: "pw"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	headers := map[string]string{"Authorization": "Bearer " + login.Token}

	w = postJSON(router, "/api/v1/recipes", types.RecipeRequest{
		Name: "pasta", FoodCategory: "veg", Servings: 2, Instructions: "Boil water",
		Ingredients: []types.IngredientRequest{{Name: "pasta"}, {Name: "salt"}},
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = postJSON(router, "/api/v1/recipes", types.RecipeRequest{Name: "pasta", Servings: 1}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/search?excludedIngredients=salt", headers)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)

	w = do(router, http.MethodGet, "/api/v1/recipes/search?searchTextInInstructions=WATER", headers)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, created.ID, resp.Recipes[0].ID)

	w = do(router, http.MethodDelete, "/api/v1/recipes/"+itoa(created.ID), headers)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes", headers)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Recipes)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
