package scheduler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers exposes scheduled tasks over HTTP.
type Handlers struct {
	scheduler *Scheduler
}

// NewHandlers creates new scheduler handlers.
func NewHandlers(s *Scheduler) *Handlers {
	return &Handlers{scheduler: s}
}

// RegisterRoutes registers scheduler routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/tasks", h.ListTasks)
	g.POST("/tasks/:id/run", h.RunTask)
}

// ListTasks returns all registered tasks.
// GET /api/v1/scheduler/tasks
func (h *Handlers) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.ListTasks())
}

// RunTask triggers a task immediately.
// POST /api/v1/scheduler/tasks/:id/run
func (h *Handlers) RunTask(c echo.Context) error {
	err := h.scheduler.RunNow(c.Param("id"))
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, ErrTaskRunning):
		return echo.NewHTTPError(http.StatusConflict, "task is already running")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "task started"})
}
