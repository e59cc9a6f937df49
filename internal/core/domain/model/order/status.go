package order

import (
	"fmt"
	"strings"

	"roboshop/internal/pkg/errs"
)

// Status is the lifecycle stage of an order.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Processing
	Packed
	Assigned
	Shipped
	Delivered
	Cancelled
	Refunded
)

var statusNames = map[Status]string{
	Processing: "processing",
	Packed:     "packed",
	Assigned:   "assigned",
	Shipped:    "shipped",
	Delivered:  "delivered",
	Cancelled:  "cancelled",
	Refunded:   "refunded",
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Processing, Packed, Assigned, Shipped, Delivered, Cancelled, Refunded}
}

// ParseStatus maps the wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether no further action can be applied.
func (s Status) IsFinal() bool {
	return s == Refunded
}

// CountsAsRevenue reports whether an order in this status contributes to sales figures.
func (s Status) CountsAsRevenue() bool {
	return s != Cancelled && s != Refunded && s != Unknown
}

// RequiresRider reports whether an order in this status must carry a rider.
func (s Status) RequiresRider() bool {
	return s == Assigned || s == Shipped || s == Delivered
}
