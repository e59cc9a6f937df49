// Package jobs provides scheduled background tasks for roboshop.
//
// Jobs are cron based (github.com/robfig/cron/v3, six field specs with seconds)
// and never overlap with themselves.
//
// # Available Jobs
//
// 1. RiderAssignmentJob - assigns packed orders to the least loaded active rider
// while the commerce settings enable automatic assignment. Each tick drains the
// queue. Defaults to every ten seconds; AUTO_ASSIGN_SCHEDULE overrides it.
// 2. OrdersGaugeJob - refreshes the roboshop_orders_by_status gauge every 30 seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(autoAssignHandler, cfg.AutoAssignSchedule, countHandler, orderMetrics, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Assignment ignores expected outcomes (disabled, nothing packed) and warns when
// orders wait with no active rider
// - Gauge refresh logs failures and keeps the previous values
package jobs
