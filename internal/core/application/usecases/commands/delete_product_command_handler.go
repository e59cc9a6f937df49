package commands

import (
	"context"

	"roboshop/internal/core/domain/model/audit"
)

// DeleteProductCommandHandler removes a listing. Orders keep their own item
// snapshots, so past orders are unaffected.
type DeleteProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	audit      AuditTrail
}

func NewDeleteProductCommandHandler(uowFactory CatalogUoWFactory, audit AuditTrail) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, command DeleteProductCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products := uow.ProductRepository()
	p, err := products.Get(ctx, command.ProductID())
	if err != nil {
		return err
	}

	if err = p.CanBeManagedBy(command.Actor()); err != nil {
		return err
	}

	if err = products.Delete(ctx, p.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.audit.Record(ctx, command.Actor(), "product.delete", audit.EntityProduct, p.ID().String(),
		map[string]string{"sku": p.SKU()})
	return nil
}
