package queries

import (
	"context"
	"errors"
	"strings"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery finds one product by id or by slug.
type GetProductQuery struct {
	actor    user.Actor
	idOrSlug string

	guard guard.ConstructorGuard
}

func NewGetProductQuery(actor user.Actor, idOrSlug string) (GetProductQuery, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return GetProductQuery{}, errs.NewValueIsRequiredError("idOrSlug")
	}
	return GetProductQuery{actor: actor, idOrSlug: idOrSlug, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle returns inactive products to staff only; everyone else gets not found.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (*product.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("products")
	if id, err := kernel.UUIDFromString(query.idOrSlug); err == nil {
		db = db.Where("id = ?", id.Bytes())
	} else {
		db = db.Where("slug = ?", strings.ToLower(query.idOrSlug))
	}

	var row productRow
	if err := db.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", query.idOrSlug)
		}
		return nil, err
	}
	if !row.Active && !query.actor.Role.IsStaff() {
		return nil, errs.NewObjectNotFoundError("product", query.idOrSlug)
	}

	return row.toDomain()
}
