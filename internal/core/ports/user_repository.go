package ports

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for accounts and their addresses.
type UserRepository interface {
	// Add persists a new user. A taken email returns errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists profile, role, active flag and the full address list.
	Update(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks up a user by normalised email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
