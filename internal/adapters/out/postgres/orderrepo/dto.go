// Package orderrepo maps the order aggregate onto the orders, order_items and
// order_history tables.
package orderrepo

import (
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. The shipping snapshot is embedded with a ship_ prefix.
type OrderDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Number        string      `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID   `gorm:"type:uuid;index;not null"`
	CustomerEmail string      `gorm:"index;not null"`
	Shipping      ShippingDTO `gorm:"embedded;embeddedPrefix:ship_"`
	Subtotal      int64       `gorm:"not null"`
	Discount      int64       `gorm:"not null"`
	ShippingFee   int64       `gorm:"not null"`
	Tax           int64       `gorm:"not null"`
	Total         int64       `gorm:"not null"`
	CouponCode    string
	PaymentMethod string     `gorm:"not null"`
	PaymentStatus string     `gorm:"not null"`
	Status        int        `gorm:"index;not null"`
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`
	Version       int        `gorm:"not null"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ShippingDTO struct {
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// ItemDTO is one order line. Position keeps the checkout order.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	SKU       string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type HistoryDTO struct {
	OrderID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq       int        `gorm:"primaryKey"`
	Status    int        `gorm:"not null"`
	Action    string     `gorm:"not null"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	ActorRole string
	Note      string
	At        time.Time
}

func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := o.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	s := o.Shipping()
	a := o.Amounts()
	dto := OrderDTO{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		CustomerID:    o.CustomerID().Bytes(),
		CustomerEmail: o.CustomerEmail(),
		Shipping: ShippingDTO{
			Recipient:  s.Recipient,
			Phone:      s.Phone,
			Line1:      s.Line1,
			Line2:      s.Line2,
			City:       s.City,
			PostalCode: s.PostalCode,
			Country:    s.Country,
		},
		Subtotal:      a.Subtotal.Amount(),
		Discount:      a.Discount.Amount(),
		ShippingFee:   a.Shipping.Amount(),
		Tax:           a.Tax.Amount(),
		Total:         a.Total.Amount(),
		CouponCode:    o.CouponCode(),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		Status:        int(o.Status()),
		RiderID:       riderID,
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	for i, it := range o.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ProductID: it.ProductID().Bytes(),
			SKU:       it.SKU(),
			Name:      it.Name(),
			UnitPrice: it.UnitPrice().Amount(),
			Quantity:  it.Quantity(),
		})
	}
	dto.History = historyFromDomain(dto.ID, o.History(), 0)
	return dto
}

func historyFromDomain(orderID uuid.UUID, entries []order.HistoryEntry, offset int) []HistoryDTO {
	dtos := make([]HistoryDTO, 0, len(entries))
	for i, h := range entries {
		var actorID *uuid.UUID
		if h.ActorID != nil {
			raw := h.ActorID.Bytes()
			actorID = &raw
		}
		dtos = append(dtos, HistoryDTO{
			OrderID:   orderID,
			Seq:       offset + i,
			Status:    int(h.Status),
			Action:    string(h.Action),
			ActorID:   actorID,
			ActorRole: h.ActorRole.String(),
			Note:      h.Note,
			At:        h.At,
		})
	}
	return dtos
}

// ToDomain rebuilds the aggregate. Items and History must be loaded and ordered.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.OptionalUUIDFromBytes(dto.RiderID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(it.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(it.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(productID, it.SKU, it.Name, price, it.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		actorID, idErr := kernel.OptionalUUIDFromBytes(h.ActorID)
		if idErr != nil {
			return nil, idErr
		}
		history = append(history, order.HistoryEntry{
			Status:    order.Status(h.Status),
			Action:    order.Action(h.Action),
			ActorID:   actorID,
			ActorRole: user.Role(h.ActorRole),
			Note:      h.Note,
			At:        h.At,
		})
	}

	amounts, err := amountsFromDTO(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		NewOrderParams: order.NewOrderParams{
			ID:            id,
			Customer:      user.Actor{ID: customerID, Role: user.Customer},
			CustomerEmail: dto.CustomerEmail,
			Shipping: order.ShippingAddress{
				Recipient:  dto.Shipping.Recipient,
				Phone:      dto.Shipping.Phone,
				Line1:      dto.Shipping.Line1,
				Line2:      dto.Shipping.Line2,
				City:       dto.Shipping.City,
				PostalCode: dto.Shipping.PostalCode,
				Country:    dto.Shipping.Country,
			},
			Items:         items,
			Amounts:       amounts,
			CouponCode:    dto.CouponCode,
			PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		},
		Number:        dto.Number,
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		Status:        order.Status(dto.Status),
		RiderID:       riderID,
		History:       history,
		Version:       dto.Version,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func amountsFromDTO(dto OrderDTO) (order.Amounts, error) {
	values := []int64{dto.Subtotal, dto.Discount, dto.ShippingFee, dto.Tax, dto.Total}
	money := make([]kernel.Money, len(values))
	for i, v := range values {
		m, err := kernel.NewMoney(v)
		if err != nil {
			return order.Amounts{}, err
		}
		money[i] = m
	}
	return order.Amounts{
		Subtotal: money[0],
		Discount: money[1],
		Shipping: money[2],
		Tax:      money[3],
		Total:    money[4],
	}, nil
}
