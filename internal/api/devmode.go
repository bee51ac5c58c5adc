package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flickstream/flickstream/internal/health"
	"github.com/flickstream/flickstream/internal/metadata/mock"
)

// EventDevModeChanged is broadcast when developer mode is toggled at runtime.
const EventDevModeChanged = "devmode:changed"

type devModeRequest struct {
	Enabled *bool `json:"enabled"`
}

// switchMetadataSource swaps between the real TMDB client and the offline catalogue.
func (s *Server) switchMetadataSource(devMode bool) {
	previous := s.metadataService.Source().Name()

	if devMode {
		s.logger.Info().Msg("Switching to mock metadata provider")
		s.metadataService.SetSource(mock.NewTMDBClient())
	} else {
		s.logger.Info().Msg("Switching to real metadata provider")
		s.metadataService.SetSource(s.realSource)
	}
	s.devMode.Store(devMode)

	if current := s.metadataService.Source().Name(); current != previous {
		s.healthService.UnregisterItem(health.CategoryMetadata, previous)
	}
}

// getDeveloperMode reports whether the offline catalogue is in use.
// GET /api/v1/devmode
func (s *Server) getDeveloperMode(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"enabled": s.devMode.Load()})
}

// setDeveloperMode toggles the offline catalogue and re-checks provider health.
// PUT /api/v1/devmode
func (s *Server) setDeveloperMode(c echo.Context) error {
	var req devModeRequest
	if err := c.Bind(&req); err != nil || req.Enabled == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "enabled is required")
	}

	if *req.Enabled != s.devMode.Load() {
		s.switchMetadataSource(*req.Enabled)
		s.metadataService.RegisterProvider()
		if err := s.scheduler.RunNow(healthTaskID); err != nil {
			s.logger.Debug().Err(err).Msg("Health check not triggered after dev mode switch")
		}
		if err := s.hub.Broadcast(EventDevModeChanged, map[string]bool{"enabled": *req.Enabled}); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to broadcast dev mode change")
		}
	}

	return c.JSON(http.StatusOK, map[string]bool{"enabled": s.devMode.Load()})
}
