// Package kafka publishes order lifecycle events.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"roboshop/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

const EventOrderStatusChanged = "order.status_changed"

// DefaultPublishTimeout bounds how long a status change waits on the broker.
const DefaultPublishTimeout = 3 * time.Second

// OrderStatusChangedEvent is the message value. The key is the order id, so all
// events of one order land on one partition in order.
type OrderStatusChangedEvent struct {
	Event     string    `json:"event"`
	OrderID   string    `json:"orderId"`
	Number    string    `json:"number"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Action    string    `json:"action"`
	ActorID   *string   `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	RiderID   *string   `json:"riderId,omitempty"`
	At        time.Time `json:"at"`
}

func NewOrderStatusChangedEvent(c order.StatusChanged) OrderStatusChangedEvent {
	e := OrderStatusChangedEvent{
		Event:     EventOrderStatusChanged,
		OrderID:   c.OrderID.String(),
		Number:    c.Number,
		From:      c.From.String(),
		To:        c.To.String(),
		Action:    c.Action.String(),
		ActorRole: string(c.ActorRole),
		At:        c.At.UTC(),
	}
	if c.ActorID != nil {
		id := c.ActorID.String()
		e.ActorID = &id
	}
	if c.RiderID != nil {
		id := c.RiderID.String()
		e.RiderID = &id
	}
	return e
}

// MessageWriter is the part of *kafka-go.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type OrderEventPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *slog.Logger
}

// NewWriter builds a writer for the order events topic.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           DefaultPublishTimeout,
		AllowAutoTopicCreation: true,
	}
}

func NewOrderEventPublisher(writer MessageWriter, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer:  writer,
		timeout: DefaultPublishTimeout,
		logger:  logger.With("component", "order-events"),
	}
}

// WithTimeout replaces DefaultPublishTimeout.
func (p *OrderEventPublisher) WithTimeout(d time.Duration) *OrderEventPublisher {
	p.timeout = d
	return p
}

// Publish writes one message per change in a single batch. The write outlives a
// cancelled request but not the publish timeout.
func (p *OrderEventPublisher) Publish(ctx context.Context, changes []order.StatusChanged) error {
	if len(changes) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(changes))
	for _, c := range changes {
		value, err := json.Marshal(NewOrderStatusChangedEvent(c))
		if err != nil {
			return err
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(c.OrderID.String()),
			Value: value,
			Headers: []kafkago.Header{
				{Key: "event", Value: []byte(EventOrderStatusChanged)},
			},
			Time: c.At,
		})
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msgs...); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "Published order events", "count", len(msgs))
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []order.StatusChanged) error { return nil }
