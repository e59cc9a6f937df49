package jobs

import (
	"fmt"
	"log/slog"

	"roboshop/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	riderAssignmentJob *RiderAssignmentJob
	ordersGaugeJob     *OrdersGaugeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	assigner RiderAssigner,
	assignSchedule string,
	counter OrderCounter,
	metrics ports.OrderMetrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		riderAssignmentJob: NewRiderAssignmentJob(assigner, assignSchedule, logger),
		ordersGaugeJob:     NewOrdersGaugeJob(counter, metrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.riderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider assignment job: %w", err)
	}

	if err := jm.ordersGaugeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.riderAssignmentJob.Stop()
		return fmt.Errorf("failed to start orders gauge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.ordersGaugeJob.Stop()
	jm.riderAssignmentJob.Stop()
}
