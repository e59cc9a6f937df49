package ports

import (
	"context"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
)

type IssueRepository interface {
	Add(ctx context.Context, aggregate *issue.Issue) error

	// Update persists status and appends messages not yet stored.
	Update(ctx context.Context, aggregate *issue.Issue) error

	Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error)

	// GetForUpdate is Get holding a row lock until the transaction ends, so
	// concurrent replies on one thread apply one after another.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*issue.Issue, error)
}
