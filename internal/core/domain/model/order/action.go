package order

import (
	"fmt"
	"strings"

	"roboshop/internal/pkg/errs"
)

// Action is a request to move an order along its lifecycle.
type Action string

const (
	Pack    Action = "pack"
	Assign  Action = "assign"
	Ship    Action = "ship"
	Deliver Action = "deliver"
	Revert  Action = "revert"
	Cancel  Action = "cancel"
	Refund  Action = "refund"
	// Place is recorded in the history when the order is created; it cannot be applied.
	Place Action = "place"
)

// transitions is the (current status, action) -> next status table.
var transitions = map[Action]map[Status]Status{
	Pack:    {Processing: Packed},
	Assign:  {Packed: Assigned, Assigned: Assigned},
	Ship:    {Assigned: Shipped},
	Deliver: {Shipped: Delivered},
	Revert:  {Packed: Processing, Assigned: Packed, Shipped: Assigned},
	Cancel:  {Processing: Cancelled, Packed: Cancelled, Assigned: Cancelled},
	Refund:  {Cancelled: Refunded, Delivered: Refunded},
}

// ParseAction maps the wire name to an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[a]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
	}
	return a, nil
}

func (a Action) String() string {
	return string(a)
}

// Next returns the status reached by applying a from s.
func (s Status) Next(a Action) (Status, error) {
	next, ok := transitions[a][s]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot %s an order that is %s", a, s),
		)
	}
	return next, nil
}

// AvailableActions lists the actions that have a transition from s, in table order.
func (s Status) AvailableActions() []Action {
	out := make([]Action, 0, 3)
	for _, a := range []Action{Pack, Assign, Ship, Deliver, Revert, Cancel, Refund} {
		if _, ok := transitions[a][s]; ok {
			out = append(out, a)
		}
	}
	return out
}
