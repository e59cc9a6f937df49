package commands

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/product"
)

type UpdateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	audit      AuditTrail
}

func NewUpdateProductCommandHandler(uowFactory CatalogUoWFactory, audit AuditTrail) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, command UpdateProductCommand) (*product.Product, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products := uow.ProductRepository()
	p, err := products.Get(ctx, command.ProductID())
	if err != nil {
		return nil, err
	}

	if err = p.CanBeManagedBy(command.Actor()); err != nil {
		return nil, err
	}

	if err = p.Update(command.Fields(), time.Now()); err != nil {
		return nil, err
	}

	if err = products.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.Record(ctx, command.Actor(), "product.update", audit.EntityProduct, p.ID().String(),
		map[string]string{"sku": p.SKU()})
	return p, nil
}
