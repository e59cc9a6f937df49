package queries

import (
	"context"
	"errors"
	"sort"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

type GetCartQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewGetCartQuery(actor user.Actor) (GetCartQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CartLine is a cart entry priced against the current catalog.
type CartLine struct {
	ProductID kernel.UUID
	SKU       string
	Name      string
	Slug      string
	UnitPrice kernel.Money
	Quantity  int
	LineTotal kernel.Money
	Stock     int

	// Available is false when the product was unpublished or no longer has
	// enough stock for the quantity.
	Available bool
}

type Cart struct {
	Lines    []CartLine
	Subtotal kernel.Money
	Items    int
}

// GetCartQueryHandler resolves the stored quantities against the catalog.
// Lines whose product was deleted are dropped.
type GetCartQueryHandler struct {
	db   *gorm.DB
	cart ports.CartStore
}

func NewGetCartQueryHandler(db *gorm.DB, cart ports.CartStore) GetCartQueryHandler {
	return GetCartQueryHandler{db: db, cart: cart}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (Cart, error) {
	if err := query.Validate(); err != nil {
		return Cart{}, err
	}

	quantities, err := h.cart.Get(ctx, query.actor.ID)
	if err != nil {
		return Cart{}, err
	}
	cart := Cart{Lines: make([]CartLine, 0, len(quantities))}
	if len(quantities) == 0 {
		return cart, nil
	}

	ids := make([]any, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id.Bytes())
	}
	var rows []productRow
	if err = h.db.WithContext(ctx).Table("products").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return Cart{}, err
	}

	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return Cart{}, err
		}
		qty := quantities[p.ID()]
		line := CartLine{
			ProductID: p.ID(),
			SKU:       p.SKU(),
			Name:      p.Name(),
			Slug:      p.Slug(),
			UnitPrice: p.Price(),
			Quantity:  qty,
			LineTotal: p.Price().Times(qty),
			Stock:     p.Stock(),
			Available: p.IsActive() && qty <= p.Stock(),
		}
		cart.Lines = append(cart.Lines, line)
		cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
		cart.Items += qty
	}
	sort.Slice(cart.Lines, func(i, j int) bool { return cart.Lines[i].SKU < cart.Lines[j].SKU })

	return cart, nil
}
