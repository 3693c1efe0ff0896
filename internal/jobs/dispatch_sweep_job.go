package jobs

import (
	"context"
	"log/slog"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// sweepRadiusFactor widens the search beyond the default radius on every
// sweep, so orders no first round could place still find a courier.
const sweepRadiusFactor = 2.0

// DispatchSweepJob periodically re-offers orders stuck in rider search.
// Runs every 15 seconds with a widened radius; an empty sweep is logged at
// debug level only.
type DispatchSweepJob struct {
	handler commands.SweepDispatchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchSweepJob creates the dispatch sweep job.
func NewDispatchSweepJob(handler commands.SweepDispatchCommandHandler, logger *slog.Logger) *DispatchSweepJob {
	return &DispatchSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_sweep_job"),
	}
}

// Start schedules the sweep every 15 seconds.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepDispatchCommand(
			services.DefaultRadiusMeters * sweepRadiusFactor)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "failed to build sweep command", "error", cmdErr)
			return
		}

		offered, sweepErr := j.handler.Handle(ctx, cmd)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep failed", "error", sweepErr)
			return
		}
		if offered > 0 {
			j.logger.InfoContext(ctx, "dispatch sweep re-offered stuck orders",
				"orders_offered", offered)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch sweep job started (running every 15 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch sweep job stopped")
}
