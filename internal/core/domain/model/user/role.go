package user

import (
	"fmt"
	"strings"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
)

// Role decides which dashboard a user sees and which operations they may run.
type Role string

const (
	Customer Role = "customer"
	Seller   Role = "seller"
	Rider    Role = "rider"
	Admin    Role = "admin"
)

// ParseRole accepts any casing of the four role names.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Customer, Seller, Rider, Admin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role operates the shop (seller or admin).
func (r Role) IsStaff() bool {
	return r == Seller || r == Admin
}

// Actor is the authenticated caller of a command.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// System is the actor used by background jobs.
var System = Actor{Role: Admin}

// IsSystem reports whether the actor is the background job actor.
func (a Actor) IsSystem() bool {
	return a.ID.Validate() != nil && a.Role == Admin
}

// RequireRole returns a Forbidden error unless the actor has one of the roles.
func (a Actor) RequireRole(roles ...Role) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return errs.NewForbiddenError(fmt.Sprintf("role %s may not perform this operation", a.Role))
}
