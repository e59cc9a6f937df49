package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
)

// MaxItems caps distinct lines per order.
const MaxItems = 50

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of a purchase. Items, amounts and history are embedded
// and only change through the aggregate's methods.
type Order struct {
	id            kernel.UUID
	number        string
	customerID    kernel.UUID
	customerEmail string
	shipping      ShippingAddress
	items         []Item
	amounts       Amounts
	couponCode    string
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	status        Status
	riderID       *kernel.UUID
	history       []HistoryEntry
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	changes       []StatusChanged
	isConstructed bool
}

// NewOrderParams carries everything checkout knows about a new order.
type NewOrderParams struct {
	ID            kernel.UUID
	Customer      user.Actor
	CustomerEmail string
	Shipping      ShippingAddress
	Items         []Item
	Amounts       Amounts
	CouponCode    string
	PaymentMethod PaymentMethod
}

// NewOrder places an order in Processing. Card orders are recorded as paid at
// placement; cash-on-delivery orders become paid on delivery.
func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	var itemsErr error
	switch {
	case len(p.Items) == 0:
		itemsErr = errs.NewValueIsRequiredError("items")
	case len(p.Items) > MaxItems:
		itemsErr = errs.NewValueIsOutOfRangeError("items", len(p.Items), 1, MaxItems)
	default:
		itemsErr = p.Amounts.Validate(p.Items)
	}
	var emailErr error
	if strings.TrimSpace(p.CustomerEmail) == "" {
		emailErr = errs.NewValueIsRequiredError("customer email")
	}
	var paymentErr error
	if p.PaymentMethod != CashOnDelivery && p.PaymentMethod != Card {
		paymentErr = errs.NewValueIsInvalidError("payment method")
	}
	if err := errors.Join(p.ID.Validate(), p.Customer.ID.Validate(), emailErr,
		p.Shipping.Validate(), itemsErr, paymentErr); err != nil {
		return nil, err
	}

	paymentStatus := PaymentPending
	if p.PaymentMethod == Card {
		paymentStatus = PaymentPaid
	}

	now = now.UTC()
	actorID := p.Customer.ID
	o := &Order{
		id:            p.ID,
		number:        NumberFor(p.ID),
		customerID:    p.Customer.ID,
		customerEmail: user.NormalizeEmail(p.CustomerEmail),
		shipping:      p.Shipping,
		items:         append([]Item(nil), p.Items...),
		amounts:       p.Amounts,
		couponCode:    strings.ToUpper(strings.TrimSpace(p.CouponCode)),
		paymentMethod: p.PaymentMethod,
		paymentStatus: paymentStatus,
		status:        Processing,
		history: []HistoryEntry{{
			Status: Processing, Action: Place, ActorID: &actorID, ActorRole: p.Customer.Role, At: now,
		}},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	NewOrderParams
	Number        string
	PaymentStatus PaymentStatus
	Status        Status
	RiderID       *kernel.UUID
	History       []HistoryEntry
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreOrder rebuilds an order loaded from storage, re-checking its invariants.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o, err := NewOrder(p.NewOrderParams, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.Status.RequiresRider() && p.RiderID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("rider",
			fmt.Errorf("%s order must have a rider", p.Status))
	}
	if p.Number != "" {
		o.number = p.Number
	}
	o.paymentStatus = p.PaymentStatus
	o.status = p.Status
	o.riderID = p.RiderID
	o.history = append([]HistoryEntry(nil), p.History...)
	o.version = p.Version
	o.createdAt = p.CreatedAt.UTC()
	o.updatedAt = p.UpdatedAt.UTC()
	return o, nil
}

// NumberFor derives the customer-facing order number from the id.
func NumberFor(id kernel.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	return "RS-" + strings.ToUpper(raw[:8])
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) CustomerEmail() string { return o.customerEmail }
func (o *Order) Shipping() ShippingAddress { return o.shipping }
func (o *Order) Amounts() Amounts { return o.amounts }
func (o *Order) CouponCode() string { return o.couponCode }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Status() Status { return o.status }
func (o *Order) Rider() *kernel.UUID { return o.riderID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is the persisted version this aggregate was loaded at.
func (o *Order) Version() int { return o.version }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// History returns a copy of the audit history, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Changes returns the transitions applied since the order was loaded.
func (o *Order) Changes() []StatusChanged {
	return append([]StatusChanged(nil), o.changes...)
}

// IsOwnedBy reports whether the customer placed this order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsAssignedTo reports whether the rider carries this order.
func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

// VisibleTo reports whether the actor may read the order.
func (o *Order) VisibleTo(actor user.Actor) bool {
	switch actor.Role {
	case user.Admin, user.Seller:
		return true
	case user.Rider:
		return o.IsAssignedTo(actor.ID)
	case user.Customer:
		return o.IsOwnedBy(actor.ID)
	default:
		return false
	}
}

// Transition is a requested lifecycle action.
type Transition struct {
	Action  Action
	RiderID *kernel.UUID
	Note    string
}

// Apply runs a lifecycle action on behalf of actor. It checks the actor's right to
// perform the action, looks up the next status, applies side effects on rider and
// payment, and records a history entry.
func (o *Order) Apply(actor user.Actor, t Transition, now time.Time) error {
	if err := o.authorize(actor, t.Action); err != nil {
		return err
	}

	next, err := o.status.Next(t.Action)
	if err != nil {
		return err
	}

	switch t.Action {
	case Assign:
		if t.RiderID == nil {
			return errs.NewValueIsRequiredError("riderId")
		}
		if err = t.RiderID.Validate(); err != nil {
			return err
		}
		if o.status == Assigned && o.IsAssignedTo(*t.RiderID) {
			return errs.NewValueIsInvalidErrorWithCause("riderId",
				errors.New("order is already assigned to this rider"))
		}
		rider := *t.RiderID
		o.riderID = &rider
	case Revert:
		if o.status == Assigned {
			o.riderID = nil
		}
	case Deliver:
		if o.paymentMethod == CashOnDelivery {
			o.paymentStatus = PaymentPaid
		}
	case Refund:
		if o.paymentStatus != PaymentPaid {
			return errs.NewValueIsInvalidErrorWithCause("payment",
				fmt.Errorf("cannot refund a payment that is %s", o.paymentStatus))
		}
		o.paymentStatus = PaymentRefunded
	case Pack, Ship, Cancel, Place:
	}

	now = now.UTC()
	from := o.status
	o.status = next
	o.updatedAt = now

	var actorID *kernel.UUID
	if !actor.IsSystem() {
		id := actor.ID
		actorID = &id
	}
	o.history = append(o.history, HistoryEntry{
		Status:    next,
		Action:    t.Action,
		ActorID:   actorID,
		ActorRole: actor.Role,
		Note:      strings.TrimSpace(t.Note),
		At:        now,
	})
	o.changes = append(o.changes, StatusChanged{
		OrderID:   o.id,
		Number:    o.number,
		From:      from,
		To:        next,
		Action:    t.Action,
		ActorID:   actorID,
		ActorRole: actor.Role,
		RiderID:   o.riderID,
		At:        now,
	})
	return nil
}

// Restocks reports whether the last applied change returned goods to stock.
func (c StatusChanged) Restocks() bool {
	return c.To == Cancelled
}

func (o *Order) authorize(actor user.Actor, a Action) error {
	denied := func(reason string) error {
		return errs.NewForbiddenError(fmt.Sprintf("%s may not %s this order: %s", actor.Role, a, reason))
	}

	switch actor.Role {
	case user.Admin:
		return nil
	case user.Seller:
		switch a {
		case Pack, Assign, Cancel:
			return nil
		case Revert:
			if o.status == Packed {
				return nil
			}
			return denied("sellers can only revert packed orders")
		case Ship, Deliver, Refund, Place:
		}
		return denied("action is reserved")
	case user.Rider:
		if a != Ship && a != Deliver {
			return denied("riders can only ship or deliver")
		}
		if !o.IsAssignedTo(actor.ID) {
			return denied("order is not assigned to you")
		}
		return nil
	case user.Customer:
		if a != Cancel {
			return denied("customers can only cancel")
		}
		if !o.IsOwnedBy(actor.ID) {
			return denied("not your order")
		}
		if o.status != Processing {
			return errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("order can only be cancelled while processing, it is %s", o.status))
		}
		return nil
	default:
		return denied("unknown role")
	}
}
