package playback

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for playback sources.
type Handlers struct {
	resolver *Resolver
}

// NewHandlers creates new playback handlers.
func NewHandlers(resolver *Resolver) *Handlers {
	return &Handlers{resolver: resolver}
}

// RegisterRoutes registers the playback routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/movies/:id/sources", h.GetSources)
}

// GetSources returns the ordered candidate sources for a movie.
// GET /api/v1/movies/:id/sources
func (h *Handlers) GetSources(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return c.JSON(http.StatusOK, h.resolver.SourcesFor(id))
}
