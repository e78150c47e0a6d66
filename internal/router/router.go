package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemanager/backend/internal/api"
	"github.com/pageza/recipemanager/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(corsOrigins []string, deps api.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(corsOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, http.StatusNotFound, "route not found")
	})

	api.SetupAPI(router, deps)
	return router
}
