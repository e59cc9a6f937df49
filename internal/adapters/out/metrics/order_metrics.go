// Package metrics exposes roboshop's Prometheus collectors.
package metrics

import (
	"net/http"

	"roboshop/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roboshop"

// NewRegistry returns a registry holding the process and Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

type OrderMetrics struct {
	transitions *prometheus.CounterVec
	byStatus    *prometheus.GaugeVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status transitions applied, by action and resulting status.",
		}, []string{"from", "to", "action"}),
		byStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_by_status",
			Help:      "Number of orders currently in each status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.transitions, m.byStatus)
	return m
}

func (m *OrderMetrics) TransitionApplied(change order.StatusChanged) {
	m.transitions.WithLabelValues(change.From.String(), change.To.String(), change.Action.String()).Inc()
}

// SetOrdersByStatus overwrites every status, so a status missing from counts reads 0.
func (m *OrderMetrics) SetOrdersByStatus(counts map[order.Status]int64) {
	for _, s := range order.AllStatuses() {
		m.byStatus.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
}
