package metadata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for movie lookups.
type Handlers struct {
	service *Service
}

// NewHandlers creates new metadata handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the metadata routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/movies/popular", h.GetPopular)
	g.GET("/movies/:id", h.GetMovie)
	g.GET("/search", h.Search)
}

// GetPopular returns one page of popular movies.
// GET /api/v1/movies/popular?page=N
func (h *Handlers) GetPopular(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			page = p
		}
	}

	result, err := h.service.PopularMovies(c.Request().Context(), page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "could not load popular movies")
	}

	return c.JSON(http.StatusOK, result)
}

// GetMovie returns the composite for one movie.
// GET /api/v1/movies/:id
func (h *Handlers) GetMovie(c echo.Context) error {
	id, err := ParseMovieID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	composite, err := h.service.Aggregate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieUnavailable) {
			return echo.NewHTTPError(http.StatusBadGateway, ErrMovieUnavailable.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, composite)
}

// Search runs a one-shot multi search. Failures yield an empty list.
// GET /api/v1/search?query=...
func (h *Handlers) Search(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		h.service.logger.Warn().Err(err).Msg("Search failed, returning no results")
		results = []SearchResult{}
	}

	return c.JSON(http.StatusOK, results)
}

// ParseMovieID parses a positive provider movie id.
func ParseMovieID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ErrInvalidMovieID
	}
	return id, nil
}
