package jobs

import (
	"context"
	"log/slog"
	"time"

	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	ordersGaugeSchedule = "*/30 * * * * *"
	ordersGaugeTimeout  = 10 * time.Second
)

// OrderCounter counts orders per status, zero counts included.
type OrderCounter interface {
	Handle(ctx context.Context, query queries.CountOrdersByStatusQuery) (map[order.Status]int64, error)
}

// OrdersGaugeJob keeps the orders-by-status gauge in line with the database.
type OrdersGaugeJob struct {
	counter OrderCounter
	metrics ports.OrderMetrics
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOrdersGaugeJob(counter OrderCounter, metrics ports.OrderMetrics, logger *slog.Logger) *OrdersGaugeJob {
	return &OrdersGaugeJob{
		counter: counter,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "orders_gauge_job"),
	}
}

// Start refreshes the gauge once before scheduling so /metrics is populated
// from the first scrape.
func (j *OrdersGaugeJob) Start() error {
	_, err := j.cron.AddFunc(ordersGaugeSchedule, func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.run(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Orders gauge job started", "schedule", ordersGaugeSchedule)
	return nil
}

func (j *OrdersGaugeJob) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, ordersGaugeTimeout)
	defer cancel()

	counts, err := j.counter.Handle(ctx, queries.NewCountOrdersByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Orders gauge job failed", "error", err)
		return
	}
	j.metrics.SetOrdersByStatus(counts)
}

func (j *OrdersGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Orders gauge job stopped")
}
