package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/catalog/store"
	"github.com/assetbay/assetbay/common/logger"
)

// TrackHandler serves the track catalog
type TrackHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(s *store.Store, log *logger.Logger) *TrackHandler {
	return &TrackHandler{
		store: s,
		log:   log,
	}
}

// Register wires the catalog routes
func (h *TrackHandler) Register(e *echo.Echo) {
	e.GET("/api/tracks", h.List)
	e.GET("/api/tracks/:id", h.Get)
	e.GET("/api/tracks/genre/:genre", h.ListByGenre)
	e.POST("/api/tracks/:id/like", h.AddLike)
}

// List returns the full catalog
// GET /api/tracks
func (h *TrackHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.All())
}

// Get returns one track by id
// GET /api/tracks/:id
func (h *TrackHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid track id")
	}

	track, ok := h.store.ByID(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "track not found")
	}

	return c.JSON(http.StatusOK, track)
}

// ListByGenre returns tracks matching a genre, case-insensitively
// GET /api/tracks/genre/:genre
func (h *TrackHandler) ListByGenre(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ByGenre(c.Param("genre")))
}

// AddLike increments a track's like counter
// POST /api/tracks/:id/like
func (h *TrackHandler) AddLike(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid track id")
	}

	if !h.store.AddLike(id) {
		return echo.NewHTTPError(http.StatusNotFound, "track not found")
	}

	h.log.Debug("like added", "track_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "like added"})
}
