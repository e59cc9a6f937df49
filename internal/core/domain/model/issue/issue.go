package issue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

const (
	MaxSubjectLength = 200
	MaxBodyLength    = 5000
)

var ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue constructor")

// Message is one post in the issue thread.
type Message struct {
	AuthorID   kernel.UUID
	AuthorRole user.Role
	Body       string
	At         time.Time
}

type Issue struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	subject    string
	category   Category
	status     Status
	messages   []Message
	createdAt  time.Time
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewIssue opens a ticket for an order with the customer's first message.
// The caller checks that the order belongs to the customer.
func NewIssue(
	id, orderID kernel.UUID,
	customer user.Actor,
	subject string,
	category Category,
	body string,
	now time.Time,
) (*Issue, error) {
	if err := customer.RequireRole(user.Customer); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	var subjectErr error
	switch {
	case subject == "":
		subjectErr = errs.NewValueIsRequiredError("subject")
	case len(subject) > MaxSubjectLength:
		subjectErr = errs.NewValueIsOutOfRangeError("subject length", len(subject), 1, MaxSubjectLength)
	}
	category, categoryErr := ParseCategory(string(category))
	msg, bodyErr := newMessage(customer, body, now)
	if err := errors.Join(id.Validate(), orderID.Validate(), customer.ID.Validate(),
		subjectErr, categoryErr, bodyErr); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Issue{
		id:         id,
		orderID:    orderID,
		customerID: customer.ID,
		subject:    subject,
		category:   category,
		status:     Open,
		messages:   []Message{msg},
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreIssue rebuilds an issue loaded from storage.
func RestoreIssue(
	id, orderID, customerID kernel.UUID,
	subject string,
	category Category,
	status Status,
	messages []Message,
	createdAt, updatedAt time.Time,
) (*Issue, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), customerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, errs.NewValueIsRequiredError("messages")
	}
	return &Issue{
		id:         id,
		orderID:    orderID,
		customerID: customerID,
		subject:    subject,
		category:   category,
		status:     status,
		messages:   append([]Message(nil), messages...),
		createdAt:  createdAt.UTC(),
		updatedAt:  updatedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func newMessage(author user.Actor, body string, now time.Time) (Message, error) {
	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return Message{}, errs.NewValueIsRequiredError("message")
	case len(body) > MaxBodyLength:
		return Message{}, errs.NewValueIsOutOfRangeError("message length", len(body), 1, MaxBodyLength)
	}
	return Message{AuthorID: author.ID, AuthorRole: author.Role, Body: body, At: now.UTC()}, nil
}

func (i *Issue) Validate() error {
	if i == nil {
		return ErrIssueIsNotConstructed
	}
	return i.guard.Validate(ErrIssueIsNotConstructed)
}

func (i *Issue) ID() kernel.UUID { return i.id }
func (i *Issue) OrderID() kernel.UUID { return i.orderID }
func (i *Issue) CustomerID() kernel.UUID { return i.customerID }
func (i *Issue) Subject() string { return i.subject }
func (i *Issue) Category() Category { return i.category }
func (i *Issue) Status() Status { return i.status }
func (i *Issue) CreatedAt() time.Time { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time { return i.updatedAt }

func (i *Issue) Messages() []Message {
	return append([]Message(nil), i.messages...)
}

// VisibleTo reports whether actor may read the thread.
func (i *Issue) VisibleTo(actor user.Actor) bool {
	switch actor.Role {
	case user.Admin, user.Seller:
		return true
	case user.Customer:
		return i.customerID.IsEqual(actor.ID)
	default:
		return false
	}
}

// AddMessage appends to the thread. A customer posting on a resolved issue reopens it;
// staff posting on an open issue moves it to in progress.
func (i *Issue) AddMessage(author user.Actor, body string, now time.Time) error {
	switch author.Role {
	case user.Customer:
		if !i.customerID.IsEqual(author.ID) {
			return errs.NewForbiddenError("issue belongs to another customer")
		}
	case user.Seller, user.Admin:
	default:
		return errs.NewForbiddenError(fmt.Sprintf("%s may not post on issues", author.Role))
	}

	msg, err := newMessage(author, body, now)
	if err != nil {
		return err
	}
	i.messages = append(i.messages, msg)

	switch {
	case author.Role == user.Customer && i.status == Resolved:
		i.status = Open
	case author.Role != user.Customer && i.status == Open:
		i.status = InProgress
	}
	i.updatedAt = now.UTC()
	return nil
}

// ChangeStatus is the explicit staff workflow action.
func (i *Issue) ChangeStatus(actor user.Actor, status Status, now time.Time) error {
	if err := actor.RequireRole(user.Seller, user.Admin); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if status == i.status {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("issue is already %s", status))
	}
	i.status = status
	i.updatedAt = now.UTC()
	return nil
}
