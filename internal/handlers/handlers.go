// Package handlers implements the HTTP and websocket API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/config"
	"github.com/amaumene/gomovies/internal/constants"
	"github.com/amaumene/gomovies/pkg/logger"
)

// Handler handles HTTP requests for the movie search API.
type Handler struct {
	finder   app.Searcher
	config   *config.Config
	logger   logger.Logger
	upgrader websocket.Upgrader
}

// New creates a new Handler with the provided finder and configuration.
func New(finder app.Searcher, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{
		finder: finder,
		config: cfg,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)

	api := r.Group("/api")
	api.GET("/movies", h.handleMovies)
	api.GET("/trending", h.handleTrending)

	// Live search session, one controller per connection
	r.GET("/ws", h.handleWebsocket)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "%s %s: %s. Try /api/movies?query=inception", constants.AppName, constants.AppVersion, constants.AppDescription)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.AppVersion})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
