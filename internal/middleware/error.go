package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/types"
)

// AbortWithError stops the chain and writes the standard error body
func AbortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, types.NewErrorResponse(status, msg))
}

// Recovery turns a panic into a logged 500 with the standard error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered", "error", fmt.Sprint(recovered), "path", c.Request.URL.Path)
		AbortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	})
}
