package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrCreateIssueCommandIsNotConstructed = errors.New(
	"CreateIssueCommand must be created via NewCreateIssueCommand constructor",
)

// CreateIssueCommand opens a support ticket about one of the customer's orders.
type CreateIssueCommand struct {
	actor    user.Actor
	orderID  kernel.UUID
	subject  string
	category issue.Category
	body     string

	guard guard.ConstructorGuard
}

func NewCreateIssueCommand(
	actor user.Actor,
	orderID kernel.UUID,
	subject, category, body string,
) (CreateIssueCommand, error) {
	parsed, categoryErr := issue.ParseCategory(category)
	if err := errors.Join(actor.RequireRole(user.Customer), orderID.Validate(), categoryErr); err != nil {
		return CreateIssueCommand{}, err
	}
	return CreateIssueCommand{
		actor:    actor,
		orderID:  orderID,
		subject:  subject,
		category: parsed,
		body:     body,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateIssueCommand) Validate() error {
	return c.guard.Validate(ErrCreateIssueCommandIsNotConstructed)
}

func (c CreateIssueCommand) Actor() user.Actor { return c.actor }
func (c CreateIssueCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateIssueCommand) Subject() string { return c.subject }
func (c CreateIssueCommand) Category() issue.Category { return c.category }
func (c CreateIssueCommand) Body() string { return c.body }
