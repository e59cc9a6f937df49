package issue

import (
	"fmt"
	"strings"

	"roboshop/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Open
	InProgress
	Resolved
)

var statusNames = map[Status]string{
	Open:       "open",
	InProgress: "in_progress",
	Resolved:   "resolved",
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid issue status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid issue status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Category classifies what went wrong with the order.
type Category string

const (
	Damaged   Category = "damaged"
	Missing   Category = "missing"
	WrongItem Category = "wrong_item"
	Delivery  Category = "delivery"
	Payment   Category = "payment"
	Other     Category = "other"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Damaged, Missing, WrongItem, Delivery, Payment, Other:
		return c, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
	}
}
