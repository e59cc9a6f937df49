package user

import (
	"errors"
	"strings"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a saved shipping address owned by a user.
type Address struct {
	id         kernel.UUID
	label      string
	recipient  string
	phone      string
	line1      string
	line2      string
	city       string
	postalCode string
	country    string
	isDefault  bool

	guard guard.ConstructorGuard
}

// AddressFields carries the user-editable part of an address.
type AddressFields struct {
	Label      string
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

func NewAddress(id kernel.UUID, f AddressFields) (Address, error) {
	if err := id.Validate(); err != nil {
		return Address{}, err
	}

	f = trimFields(f)
	if err := errors.Join(
		required("recipient", f.Recipient),
		required("phone", f.Phone),
		required("line1", f.Line1),
		required("city", f.City),
		required("country", f.Country),
	); err != nil {
		return Address{}, err
	}
	if f.Label == "" {
		f.Label = "Home"
	}

	return Address{
		id:         id,
		label:      f.Label,
		recipient:  f.Recipient,
		phone:      f.Phone,
		line1:      f.Line1,
		line2:      f.Line2,
		city:       f.City,
		postalCode: f.PostalCode,
		country:    f.Country,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAddress rebuilds an address loaded from storage.
func RestoreAddress(id kernel.UUID, f AddressFields, isDefault bool) (Address, error) {
	a, err := NewAddress(id, f)
	if err != nil {
		return Address{}, err
	}
	a.isDefault = isDefault
	return a, nil
}

func required(name, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func trimFields(f AddressFields) AddressFields {
	return AddressFields{
		Label:      strings.TrimSpace(f.Label),
		Recipient:  strings.TrimSpace(f.Recipient),
		Phone:      strings.TrimSpace(f.Phone),
		Line1:      strings.TrimSpace(f.Line1),
		Line2:      strings.TrimSpace(f.Line2),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Country:    strings.TrimSpace(f.Country),
	}
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) ID() kernel.UUID { return a.id }

func (a Address) IsDefault() bool { return a.isDefault }

func (a Address) Fields() AddressFields {
	return AddressFields{
		Label:      a.label,
		Recipient:  a.recipient,
		Phone:      a.phone,
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		PostalCode: a.postalCode,
		Country:    a.country,
	}
}
