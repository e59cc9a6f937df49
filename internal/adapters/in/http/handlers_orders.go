package http

import (
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) GetCart(c echo.Context) error {
	query, err := queries.NewGetCartQuery(actorFrom(c))
	if err != nil {
		return err
	}
	cart, err := s.queries.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// SetCartItem handles PUT /api/v1/cart/items/{productId}. Quantity 0 removes the line.
func (s *Server) SetCartItem(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}
	var req CartItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	return s.setCartItem(c, productID, req.Quantity)
}

func (s *Server) RemoveCartItem(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}
	return s.setCartItem(c, productID, 0)
}

func (s *Server) setCartItem(c echo.Context, productID kernel.UUID, quantity int) error {
	cmd, err := commands.NewSetCartItemCommand(actorFrom(c), productID, quantity)
	if err != nil {
		return err
	}
	if err = s.commands.SetCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.GetCart(c)
}

func (s *Server) ClearCart(c echo.Context) error {
	cmd, err := commands.NewClearCartCommand(actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/checkout and answers with the placed order.
func (s *Server) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("addressId", err)
	}
	lines := make([]commands.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("productId", parseErr)
		}
		lines = append(lines, commands.CartLine{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCheckoutCommand(
		actorFrom(c), addressID, order.PaymentMethod(req.PaymentMethod), req.CouponCode, lines,
	)
	if err != nil {
		return err
	}
	placed, err := s.commands.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(placed))
}

// ValidateCoupon handles GET /api/v1/coupons/{code}/validate?subtotal=. An
// unusable code is a 200 with valid=false and the reason.
func (s *Server) ValidateCoupon(c echo.Context) error {
	q := newQueryParams(c)
	subtotal := q.Money("subtotal")
	if err := q.Err(); err != nil {
		return err
	}
	if subtotal == nil {
		return errs.NewValueIsRequiredError("subtotal")
	}

	query, err := queries.NewValidateCouponQuery(c.Param("code"), *subtotal)
	if err != nil {
		return err
	}
	check, err := s.queries.ValidateCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CouponCheckResponse{
		Code:     check.Code,
		Valid:    check.Valid,
		Discount: check.Discount.Amount(),
		Reason:   check.Reason,
	})
}

func orderFilterFrom(q *queryParams) (queries.OrderFilter, error) {
	f := queries.OrderFilter{
		Search: q.String("search"),
		From:   q.Time("from"),
		To:     q.Time("to"),
	}
	if raw := q.String("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return queries.OrderFilter{}, err
		}
		f.Status = status
	}
	return f, q.Err()
}

// ListOrders handles GET /api/v1/orders, scoped to what the caller may see.
func (s *Server) ListOrders(c echo.Context) error {
	q := newQueryParams(c)
	page := q.Page()
	filter, err := orderFilterFrom(q)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actorFrom(c), filter, page)
	if err != nil {
		return err
	}
	result, err := s.queries.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPage(result.Items, result.Total, result.Page, toOrderSummaryResponse))
}

func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	o, err := s.queries.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status. A concurrent
// change to the same order answers 409.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req ChangeOrderStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	var riderID *kernel.UUID
	if req.RiderID != nil {
		id, parseErr := kernel.UUIDFromString(*req.RiderID)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("riderId", parseErr)
		}
		riderID = &id
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actorFrom(c), orderID, req.Action, riderID, req.Note)
	if err != nil {
		return err
	}
	updated, err := s.commands.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) ExportOrders(c echo.Context) error {
	q := newQueryParams(c)
	format := q.String("format")
	filter, err := orderFilterFrom(q)
	if err != nil {
		return err
	}

	query, err := queries.NewExportOrdersQuery(actorFrom(c), filter, format)
	if err != nil {
		return err
	}
	file, err := s.queries.ExportOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(c, file)
}
