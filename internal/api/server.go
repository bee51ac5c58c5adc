package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flickstream/flickstream/internal/api/ratelimit"
	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/health"
	"github.com/flickstream/flickstream/internal/metadata"
	"github.com/flickstream/flickstream/internal/metadata/tmdb"
	"github.com/flickstream/flickstream/internal/playback"
	"github.com/flickstream/flickstream/internal/scheduler"
	"github.com/flickstream/flickstream/internal/scheduler/tasks"
	"github.com/flickstream/flickstream/internal/search"
	"github.com/flickstream/flickstream/internal/session"
	"github.com/flickstream/flickstream/internal/websocket"
)

const (
	limiterCleanupTaskID = "ratelimit-cleanup"
	healthTaskID         = tasks.MetadataHealthTaskID
)

// Server handles HTTP and WebSocket traffic for FlickStream.
type Server struct {
	echo      *echo.Echo
	hub       *websocket.Hub
	logger    zerolog.Logger
	cfg       *config.Config
	startTime time.Time

	realSource      metadata.MovieSource
	metadataService *metadata.Service
	resolver        *playback.Resolver
	healthService   *health.Service
	scheduler       *scheduler.Scheduler
	limiter         *ratelimit.IPLimiter

	devMode atomic.Bool
}

// NewServer wires every service from cfg. The metadata source is the real TMDB client
// unless cfg.TMDB.Mock is set.
func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	resolver, err := playback.NewResolver(cfg.Playback.Providers)
	if err != nil {
		return nil, fmt.Errorf("failed to build playback resolver: %w", err)
	}

	sched, err := scheduler.New(logger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		logger:    logger,
		cfg:       cfg,
		startTime: time.Now(),
		resolver:  resolver,
		scheduler: sched,
		limiter:   ratelimit.NewIPLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
	}

	s.realSource = tmdb.NewClient(cfg.TMDB, logger)
	s.metadataService = metadata.NewService(s.realSource, cfg.TMDB, logger)

	s.hub = websocket.NewHub(s.newSession, logger)

	s.healthService = health.NewService(logger)
	s.healthService.SetBroadcaster(s.hub)
	s.metadataService.SetHealthService(s.healthService)

	if cfg.TMDB.Mock {
		s.switchMetadataSource(true)
	}
	s.metadataService.RegisterProvider()

	if err := s.registerTasks(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// newSession creates the per-connection session for a WebSocket client.
func (s *Server) newSession(client *websocket.Client) websocket.Intents {
	return session.New(s.metadataService, s.resolver, search.ConfigFrom(s.cfg.Search), client, s.logger)
}

func (s *Server) registerTasks() error {
	if err := tasks.RegisterMetadataHealthTask(s.scheduler, s.metadataService, s.cfg.Health, s.logger); err != nil {
		return fmt.Errorf("failed to register health task: %w", err)
	}

	err := s.scheduler.RegisterTask(&scheduler.TaskConfig{
		ID:          limiterCleanupTaskID,
		Name:        "Rate Limiter Cleanup",
		Description: "Forgets clients that have been idle for a while",
		Cron:        "*/10 * * * *",
		Func: func(ctx context.Context) error {
			s.limiter.Cleanup()
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register rate limiter cleanup: %w", err)
	}
	return nil
}

// Start runs the hub and the scheduler, then listens for HTTP requests until Shutdown.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")

	go s.hub.Run()

	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, the scheduler and every open session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	err := s.echo.Shutdown(ctx)
	s.hub.Stop()
	if schedErr := s.scheduler.Stop(); schedErr != nil {
		s.logger.Warn().Err(schedErr).Msg("Failed to stop scheduler")
	}
	return err
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}
