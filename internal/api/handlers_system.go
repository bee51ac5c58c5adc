package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/health"
)

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// getStatus returns version, provider health and scheduled tasks.
// GET /api/v1/status
func (s *Server) getStatus(c echo.Context) error {
	provider := s.metadataService.Source().Name()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":         config.Version,
		"startTime":       s.startTime.Format(time.RFC3339),
		"developerMode":   s.devMode.Load(),
		"provider":        provider,
		"providerHealthy": s.healthService.IsHealthy(health.CategoryMetadata, provider),
		"health":          s.healthService.GetAll(),
		"tasks":           s.scheduler.ListTasks(),
		"clients":         s.hub.ClientCount(),
		"playback":        s.resolver.Len(),
	})
}
