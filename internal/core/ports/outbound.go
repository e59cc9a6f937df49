package ports

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
)

// OrderEventPublisher announces committed order status changes.
type OrderEventPublisher interface {
	Publish(ctx context.Context, changes []order.StatusChanged) error
}

// AuditLog is the append-only staff action trail.
type AuditLog interface {
	Write(ctx context.Context, entry audit.Entry) error

	// List returns matching entries newest first and the total match count.
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error)
}

// OrderMetrics records order lifecycle measurements.
type OrderMetrics interface {
	TransitionApplied(change order.StatusChanged)
	SetOrdersByStatus(counts map[order.Status]int64)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns errs.ErrUnauthorized when the password does not match.
	Compare(hash, password string) error
}

// TokenIssuer issues and verifies session tokens.
type TokenIssuer interface {
	Issue(actor user.Actor) (token string, expiresAt time.Time, err error)

	// Parse returns errs.ErrUnauthorized for malformed, forged or expired tokens.
	Parse(token string) (user.Actor, error)
}
