// Package ports defines the contracts between the roboshop core and its adapters:
// repositories for every aggregate, the unit of work that binds them to one
// transaction, and the outbound services (cart store, settings cache, event
// publisher, audit log, security, metrics) the use cases call.
package ports

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/services"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, rider, payment and new history entries. The write is
	// guarded by the version the aggregate was loaded at; a concurrent change
	// returns an errs.ErrVersionIsInvalid error.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOldestPacked retrieves the packed order waiting longest for a rider.
	// Returns errs.ErrObjectNotFound when nothing is packed.
	GetOldestPacked(ctx context.Context) (*order.Order, error)

	// GetRiderLoads lists every active rider with the number of orders they carry
	// (assigned or shipped), least recently created rider first.
	GetRiderLoads(ctx context.Context) ([]services.RiderLoad, error)
}
