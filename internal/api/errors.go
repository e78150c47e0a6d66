package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/middleware"
)

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidRequest:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Internal and storage details
// are logged, not returned.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()

	switch status {
	case http.StatusServiceUnavailable:
		log.Error(c.Request.Context(), "storage failure", "error", err)
		msg = "storage temporarily unavailable"
	case http.StatusInternalServerError:
		if errors.Is(err, c.Request.Context().Err()) {
			log.Warn(c.Request.Context(), "request cancelled", "error", err)
		} else {
			log.Error(c.Request.Context(), "unexpected error", "error", err)
		}
		msg = "Internal Server Error"
	}

	middleware.AbortWithError(c, status, msg)
}
