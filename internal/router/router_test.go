package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipemanager/backend/internal/api"
	"github.com/pageza/recipemanager/backend/internal/middleware"
	"github.com/pageza/recipemanager/backend/internal/mocks"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter([]string{"*"}, api.Deps{
		Recipes: new(mocks.MockRecipeService),
		Auth:    new(mocks.MockAuthService),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}
