package ports

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	// Add persists a new product. A taken SKU or slug returns errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists the product's fields and stock.
	Update(ctx context.Context, aggregate *product.Product) error

	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBySKU is used by the bulk importer to upsert.
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)

	// GetManyForUpdate loads products and locks their rows until the transaction ends,
	// so concurrent checkouts cannot oversell. Missing ids are simply absent from the result.
	GetManyForUpdate(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}
