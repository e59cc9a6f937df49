package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

// MaxAddresses caps the saved addresses per user.
const MaxAddresses = 10

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is an account of any role. Riders are users with the Rider role.
type User struct {
	id           kernel.UUID
	email        string
	name         string
	phone        string
	passwordHash string
	role         Role
	active       bool
	addresses    []Address
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewUser registers an active account. The email is normalised to lower case.
func NewUser(id kernel.UUID, email, name, phone, passwordHash string, role Role, now time.Time) (*User, error) {
	u := &User{
		active:    true,
		createdAt: now.UTC(),
		phone:     strings.TrimSpace(phone),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setName(name),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(
	id kernel.UUID,
	email, name, phone, passwordHash string,
	role Role,
	active bool,
	addresses []Address,
	createdAt time.Time,
) (*User, error) {
	u, err := NewUser(id, email, name, phone, passwordHash, role, createdAt)
	if err != nil {
		return nil, err
	}
	for _, a := range addresses {
		if err = a.Validate(); err != nil {
			return nil, err
		}
	}
	u.active = active
	u.addresses = addresses
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) Name() string { return u.name }
func (u *User) Phone() string { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role { return u.role }
func (u *User) IsActive() bool { return u.active }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Actor returns the user as a command actor.
func (u *User) Actor() Actor {
	return Actor{ID: u.id, Role: u.role}
}

// Addresses returns a copy of the saved addresses.
func (u *User) Addresses() []Address {
	out := make([]Address, len(u.addresses))
	copy(out, u.addresses)
	return out
}

// Address looks up a saved address by id.
func (u *User) Address(id kernel.UUID) (Address, error) {
	for _, a := range u.addresses {
		if a.id.IsEqual(id) {
			return a, nil
		}
	}
	return Address{}, errs.NewObjectNotFoundError("address", id.String())
}

// AddAddress saves an address. The first one becomes the default.
func (u *User) AddAddress(a Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if len(u.addresses) >= MaxAddresses {
		return errs.NewValueIsOutOfRangeError("addresses", len(u.addresses)+1, 1, MaxAddresses)
	}
	a.isDefault = len(u.addresses) == 0
	u.addresses = append(u.addresses, a)
	return nil
}

// RemoveAddress deletes an address; if it was the default the oldest remaining one takes over.
func (u *User) RemoveAddress(id kernel.UUID) error {
	for i, a := range u.addresses {
		if !a.id.IsEqual(id) {
			continue
		}
		u.addresses = append(u.addresses[:i], u.addresses[i+1:]...)
		if a.isDefault && len(u.addresses) > 0 {
			u.addresses[0].isDefault = true
		}
		return nil
	}
	return errs.NewObjectNotFoundError("address", id.String())
}

func (u *User) ChangeRole(role Role) error {
	return u.setRole(role)
}

func (u *User) SetActive(active bool) {
	u.active = active
}

// ChangeProfile updates the display name and phone.
func (u *User) ChangeProfile(name, phone string) error {
	if err := u.setName(name); err != nil {
		return err
	}
	u.phone = strings.TrimSpace(phone)
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	u.email = email
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
