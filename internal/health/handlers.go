package health

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Checker tests every item of one category and records the outcome.
type Checker func(ctx context.Context) error

// Handlers provides HTTP handlers for health endpoints.
type Handlers struct {
	health   *Service
	checkers map[HealthCategory]Checker
}

// NewHandlers creates new health handlers. checkers may be nil.
func NewHandlers(health *Service, checkers map[HealthCategory]Checker) *Handlers {
	if checkers == nil {
		checkers = map[HealthCategory]Checker{}
	}
	return &Handlers{
		health:   health,
		checkers: checkers,
	}
}

// RegisterRoutes registers health routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAll)
	g.GET("/summary", h.GetSummary)
	g.GET("/:category", h.GetByCategory)
	g.GET("/:category/:id", h.GetItem)
	g.POST("/:category/test", h.TestCategory)
}

// GetAll returns all health items grouped by category.
// GET /api/v1/health
func (h *Handlers) GetAll(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.GetAll())
}

// GetSummary returns summary counts.
// GET /api/v1/health/summary
func (h *Handlers) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.GetSummary())
}

// GetByCategory returns health items for a specific category.
// GET /api/v1/health/:category
func (h *Handlers) GetByCategory(c echo.Context) error {
	category := HealthCategory(c.Param("category"))
	if !IsValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid health category")
	}

	return c.JSON(http.StatusOK, h.health.GetByCategory(category))
}

// GetItem returns a single health item.
// GET /api/v1/health/:category/:id
func (h *Handlers) GetItem(c echo.Context) error {
	category := HealthCategory(c.Param("category"))
	if !IsValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid health category")
	}

	item := h.health.GetItem(category, c.Param("id"))
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound, "health item not found")
	}
	return c.JSON(http.StatusOK, item)
}

// TestCategory runs the checker for a category and returns the refreshed items.
// POST /api/v1/health/:category/test
func (h *Handlers) TestCategory(c echo.Context) error {
	category := HealthCategory(c.Param("category"))
	if !IsValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid health category")
	}

	check, ok := h.checkers[category]
	if !ok {
		return c.JSON(http.StatusOK, map[string]string{"message": "no checks for this category"})
	}

	result := map[string]interface{}{"category": category, "success": true}
	if err := check(c.Request().Context()); err != nil {
		result["success"] = false
		result["message"] = err.Error()
	}
	result["items"] = h.health.GetByCategory(category)

	return c.JSON(http.StatusOK, result)
}
