package commands

import (
	"context"
	"log/slog"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
)

// AuditTrail writes audit entries after a command has committed. Failures are
// logged and swallowed. The zero value records nothing.
type AuditTrail struct {
	log    ports.AuditLog
	logger *slog.Logger
}

func NewAuditTrail(log ports.AuditLog, logger *slog.Logger) AuditTrail {
	return AuditTrail{log: log, logger: logger.With("component", "audit_trail")}
}

func (a AuditTrail) Record(
	ctx context.Context,
	actor user.Actor,
	action string,
	entity audit.Entity,
	entityID string,
	details map[string]string,
) {
	if a.log == nil {
		return
	}
	entry := audit.NewEntry(actor, action, entity, entityID, details, time.Now())
	if err := a.log.Write(ctx, entry); err != nil && a.logger != nil {
		a.logger.WarnContext(ctx, "Failed to write audit entry",
			"action", action, "entity", entity, "entity_id", entityID, "error", err)
	}
}

// OrderChangeNotifier fans committed order transitions out to the event stream,
// the audit trail and the metrics. Every sink is best effort.
type OrderChangeNotifier struct {
	publisher ports.OrderEventPublisher
	metrics   ports.OrderMetrics
	audit     AuditTrail
	logger    *slog.Logger
}

func NewOrderChangeNotifier(
	publisher ports.OrderEventPublisher,
	metrics ports.OrderMetrics,
	audit AuditTrail,
	logger *slog.Logger,
) OrderChangeNotifier {
	return OrderChangeNotifier{
		publisher: publisher,
		metrics:   metrics,
		audit:     audit,
		logger:    logger.With("component", "order_change_notifier"),
	}
}

func (n OrderChangeNotifier) Notify(ctx context.Context, actor user.Actor, changes []order.StatusChanged) {
	if len(changes) == 0 {
		return
	}
	if n.publisher != nil {
		if err := n.publisher.Publish(ctx, changes); err != nil && n.logger != nil {
			n.logger.WarnContext(ctx, "Failed to publish order status events",
				"order_id", changes[0].OrderID.String(), "error", err)
		}
	}
	for _, c := range changes {
		if n.metrics != nil {
			n.metrics.TransitionApplied(c)
		}
		details := map[string]string{"from": c.From.String(), "to": c.To.String(), "number": c.Number}
		if c.RiderID != nil {
			details["rider_id"] = c.RiderID.String()
		}
		n.audit.Record(ctx, actor, "order."+c.Action.String(), audit.EntityOrder, c.OrderID.String(), details)
	}
}
