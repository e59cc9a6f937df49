package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
)

// CheckoutCommandHandler turns a cart into an order in one transaction:
// products are locked and decremented, the coupon is redeemed and the order is
// priced from the current commerce settings.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	cart       ports.CartStore
	pricer     services.Pricer
	logger     *slog.Logger
}

func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	cart ports.CartStore,
	pricer services.Pricer,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		cart:       cart,
		pricer:     pricer,
		logger:     logger.With("component", "checkout"),
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	actor := command.Actor()
	lines := command.Lines()
	fromCart := len(lines) == 0
	if fromCart {
		var err error
		if lines, err = h.cartLines(ctx, actor.ID); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.UserRepository().Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	address, err := customer.Address(command.AddressID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items, err := h.reserveStock(ctx, uow.ProductRepository(), lines)
	if err != nil {
		return nil, err
	}

	current, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	var (
		c       *coupon.Coupon
		coupons ports.CouponRepository
	)
	if code := command.CouponCode(); code != "" {
		coupons = uow.CouponRepository()
		if c, err = coupons.Get(ctx, code); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, errs.NewValueIsInvalidErrorWithCause("coupon", errors.New("unknown coupon code"))
			}
			return nil, err
		}
	}

	amounts, err := h.pricer.Price(items, c, current.Commerce, now)
	if err != nil {
		return nil, err
	}
	if c != nil {
		if err = coupons.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	placed, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Customer:      actor,
		CustomerEmail: customer.Email(),
		Shipping:      order.SnapshotAddress(address),
		Items:         items,
		Amounts:       amounts,
		CouponCode:    command.CouponCode(),
		PaymentMethod: command.PaymentMethod(),
	}, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if fromCart {
		if err = h.cart.Clear(ctx, actor.ID); err != nil {
			h.logger.WarnContext(ctx, "Failed to clear cart after checkout",
				"user_id", actor.ID.String(), "order_id", placed.ID().String(), "error", err)
		}
	}
	return placed, nil
}

func (h CheckoutCommandHandler) cartLines(ctx context.Context, userID kernel.UUID) ([]CartLine, error) {
	cart, err := h.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errors.New("cart is empty"))
	}
	lines := make([]CartLine, 0, len(cart))
	for id, qty := range cart {
		lines = append(lines, CartLine{ProductID: id, Quantity: qty})
	}
	return MergeCartLines(lines)
}

// reserveStock locks the products, decrements their stock and snapshots the order items.
func (h CheckoutCommandHandler) reserveStock(
	ctx context.Context,
	products ports.ProductRepository,
	lines []CartLine,
) ([]order.Item, error) {
	ids := make([]kernel.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}

	locked, err := products.GetManyForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(lines))
	var stockErrs []error
	for _, l := range lines {
		p, ok := locked[l.ProductID]
		if !ok {
			stockErrs = append(stockErrs, errs.NewObjectNotFoundError("product", l.ProductID.String()))
			continue
		}
		if err = p.DecreaseStock(l.Quantity); err != nil {
			stockErrs = append(stockErrs, err)
			continue
		}
		item, err := order.NewItem(p.ID(), p.SKU(), p.Name(), p.Price(), l.Quantity)
		if err != nil {
			stockErrs = append(stockErrs, err)
			continue
		}
		items = append(items, item)
	}
	if err = errors.Join(stockErrs...); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if err = products.Update(ctx, locked[l.ProductID]); err != nil {
			return nil, err
		}
	}
	return items, nil
}
