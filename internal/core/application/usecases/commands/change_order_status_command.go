package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

// MaxNoteLength caps the free-text note stored with a transition.
const MaxNoteLength = 500

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand runs one lifecycle action on an order.
type ChangeOrderStatusCommand struct {
	actor   user.Actor
	orderID kernel.UUID
	action  order.Action
	riderID *kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	actor user.Actor,
	orderID kernel.UUID,
	action string,
	riderID *kernel.UUID,
	note string,
) (ChangeOrderStatusCommand, error) {
	parsed, actionErr := order.ParseAction(action)
	note = strings.TrimSpace(note)
	var noteErr error
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		noteErr = errs.NewValueIsOutOfRangeError("note length", n, 0, MaxNoteLength)
	}
	if err := errors.Join(actor.Role.Validate(), orderID.Validate(), actionErr, noteErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		action:  parsed,
		riderID: riderID,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() user.Actor { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Action() order.Action { return c.action }
func (c ChangeOrderStatusCommand) RiderID() *kernel.UUID { return c.riderID }
func (c ChangeOrderStatusCommand) Note() string { return c.note }
