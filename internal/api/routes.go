package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apimw "github.com/flickstream/flickstream/internal/api/middleware"
	"github.com/flickstream/flickstream/internal/health"
	"github.com/flickstream/flickstream/internal/metadata"
	"github.com/flickstream/flickstream/internal/playback"
	"github.com/flickstream/flickstream/internal/scheduler"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(apimw.SecurityHeaders())

	// Request body size limit
	s.echo.Use(middleware.BodyLimit("64K"))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("requestId", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Debug().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("requestId", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get("Upgrade") == "websocket"
		},
	}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	api := s.echo.Group("/api/v1")
	api.GET("/status", s.getStatus)
	api.GET("/ws", s.hub.HandleWebSocket)

	devmode := api.Group("/devmode")
	devmode.GET("", s.getDeveloperMode)
	devmode.PUT("", s.setDeveloperMode)

	// Everything that reaches the metadata provider is throttled per client.
	movies := api.Group("", s.limiter.Middleware())
	metadata.NewHandlers(s.metadataService).RegisterRoutes(movies)
	playback.NewHandlers(s.resolver).RegisterRoutes(movies)

	health.NewHandlers(s.healthService, map[health.HealthCategory]health.Checker{
		health.CategoryMetadata: s.metadataService.CheckHealth,
	}).RegisterRoutes(api.Group("/health"))

	scheduler.NewHandlers(s.scheduler).RegisterRoutes(api.Group("/scheduler"))
}
