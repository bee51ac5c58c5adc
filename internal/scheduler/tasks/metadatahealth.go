package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/scheduler"
)

// MetadataHealthTaskID identifies the provider health check.
const MetadataHealthTaskID = "metadata-health"

// HealthChecker tests the metadata provider and records the outcome.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// MetadataHealthTask handles scheduled health checks for the metadata provider.
type MetadataHealthTask struct {
	checker HealthChecker
	logger  zerolog.Logger
}

// NewMetadataHealthTask creates a new metadata health check task.
func NewMetadataHealthTask(checker HealthChecker, logger zerolog.Logger) *MetadataHealthTask {
	return &MetadataHealthTask{
		checker: checker,
		logger:  logger.With().Str("task", MetadataHealthTaskID).Logger(),
	}
}

// Run executes the provider health check.
func (t *MetadataHealthTask) Run(ctx context.Context) error {
	if err := t.checker.CheckHealth(ctx); err != nil {
		t.logger.Warn().Err(err).Msg("Metadata provider health check failed")
		return err
	}
	t.logger.Debug().Msg("Metadata provider health check passed")
	return nil
}

// RegisterMetadataHealthTask registers the provider health check with the scheduler.
func RegisterMetadataHealthTask(
	sched *scheduler.Scheduler,
	checker HealthChecker,
	cfg config.HealthConfig,
	logger zerolog.Logger,
) error {
	task := NewMetadataHealthTask(checker, logger)

	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "*/15 * * * *"
	}

	return sched.RegisterTask(&scheduler.TaskConfig{
		ID:          MetadataHealthTaskID,
		Name:        "Metadata Provider Health Check",
		Description: "Tests connectivity to the movie metadata provider",
		Cron:        cronExpr,
		RunOnStart:  true,
		Timeout:     30 * time.Second,
		Func:        task.Run,
	})
}
