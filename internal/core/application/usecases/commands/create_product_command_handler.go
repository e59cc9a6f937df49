package commands

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	audit      AuditTrail
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory, audit AuditTrail) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, command CreateProductCommand) (*product.Product, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(kernel.NewUUID(), command.Actor().ID, command.Fields(), time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.Record(ctx, command.Actor(), "product.create", audit.EntityProduct, p.ID().String(),
		map[string]string{"sku": p.SKU()})
	return p, nil
}
