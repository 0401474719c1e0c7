package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gomovies/internal/constants"
	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/middleware"
	"github.com/amaumene/gomovies/internal/models"
)

// handleTrending lists the most searched terms. Store failures are logged
// and answered with an empty list.
func (h *Handler) handleTrending(c *gin.Context) {
	limit := h.config.TrendingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, constants.MaxTrendingLimit)
	}

	records, err := h.finder.Trending(c.Request.Context(), limit)
	if err != nil {
		if apperrors.IsStoreError(err) {
			h.logger.Warnf("[HTTP] %s failed to list trending searches: %v", middleware.GetRequestID(c), err)
		} else {
			h.logger.Debugf("[HTTP] %s trending listing aborted: %v", middleware.GetRequestID(c), err)
		}
		records = nil
	}
	if records == nil {
		records = []models.TrendingRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"results": records})
}
