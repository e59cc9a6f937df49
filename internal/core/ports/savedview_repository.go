package ports

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/savedview"
)

type SavedViewRepository interface {
	// Add persists a view. A name already used by the owner in the scope returns errs.ErrAlreadyExists.
	Add(ctx context.Context, view *savedview.SavedView) error

	// Delete removes the owner's view. Views of other owners are reported as not found.
	Delete(ctx context.Context, ownerID, id kernel.UUID) error

	// ListByOwner returns the owner's views, optionally narrowed to one scope.
	ListByOwner(ctx context.Context, ownerID kernel.UUID, scope savedview.Scope) ([]*savedview.SavedView, error)
}
