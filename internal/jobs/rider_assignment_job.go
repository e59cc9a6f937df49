package jobs

import (
	"context"
	"errors"
	"log/slog"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultRiderAssignmentSchedule runs the assignment every ten seconds.
const DefaultRiderAssignmentSchedule = "*/10 * * * * *"

// RiderAssigner assigns at most one packed order per call.
type RiderAssigner interface {
	Handle(ctx context.Context, command commands.AutoAssignRiderCommand) (*order.Order, error)
}

// RiderAssignmentJob hands packed orders to the least loaded active rider.
// Each tick drains the queue until no order or no rider is left.
type RiderAssignmentJob struct {
	handler  RiderAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRiderAssignmentJob accepts a six field cron expression (with seconds). An empty
// schedule falls back to DefaultRiderAssignmentSchedule.
func NewRiderAssignmentJob(handler RiderAssigner, schedule string, logger *slog.Logger) *RiderAssignmentJob {
	if schedule == "" {
		schedule = DefaultRiderAssignmentSchedule
	}
	return &RiderAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "rider_assignment_job"),
	}
}

func (j *RiderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider assignment job started", "schedule", j.schedule)
	return nil
}

// run returns the number of orders assigned.
func (j *RiderAssignmentJob) run(ctx context.Context) int {
	assigned := 0
	for {
		o, err := j.handler.Handle(ctx, commands.NewAutoAssignRiderCommand())
		switch {
		case err == nil:
			assigned++
			attrs := []any{"order_id", o.ID().String(), "order_number", o.Number()}
			if rider := o.Rider(); rider != nil {
				attrs = append(attrs, "rider_id", rider.String())
			}
			j.logger.InfoContext(ctx, "Rider assigned", attrs...)
			continue
		case errors.Is(err, commands.ErrAutoAssignDisabled), errors.Is(err, commands.ErrNoOrderFound):
		case errors.Is(err, commands.ErrNoFreeRidersFound):
			j.logger.WarnContext(ctx, "Packed orders are waiting but no rider is active")
		default:
			j.logger.ErrorContext(ctx, "Rider assignment job failed", "error", err)
		}
		return assigned
	}
}

// Stop waits for a running tick to finish.
func (j *RiderAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider assignment job stopped")
}
