package ports

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
)

// CartStore keeps one shopping cart per user: product id -> quantity.
// Carts expire after a period of inactivity.
type CartStore interface {
	Get(ctx context.Context, userID kernel.UUID) (map[kernel.UUID]int, error)

	// SetItem stores qty for the product; qty 0 removes the line.
	SetItem(ctx context.Context, userID, productID kernel.UUID, qty int) error

	Clear(ctx context.Context, userID kernel.UUID) error
}
