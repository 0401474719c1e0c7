package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gomovies/internal/constants"
	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/middleware"
)

// handleMovies searches for ?query= or lists popular movies when it is blank.
// Upstream failures answer 502, anything else 500, both with the generic text.
func (h *Handler) handleMovies(c *gin.Context) {
	query := c.Query("query")
	if len(query) > constants.MaxQueryLength {
		h.badRequest(c, "query is too long")
		return
	}

	movies, err := h.finder.Find(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorf("[HTTP] %s fetch for %q failed: %v", middleware.GetRequestID(c), query, err)
		status := http.StatusInternalServerError
		if apperrors.IsFetchError(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": constants.FetchErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": movies})
}
