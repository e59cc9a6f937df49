// Package savedview implements named filter presets dashboard users keep per list screen.
package savedview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

const (
	MaxNameLength = 60
	MaxFilters    = 20
)

type Scope string

const (
	Orders   Scope = "orders"
	Products Scope = "products"
	Issues   Scope = "issues"
)

var ErrSavedViewIsNotConstructed = errors.New("SavedView must be created via NewSavedView constructor")

func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case Orders, Products, Issues:
		return sc, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not a view scope", s))
	}
}

type SavedView struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	scope     Scope
	name      string
	filters   map[string]string
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewSavedView(
	id, ownerID kernel.UUID,
	scope Scope,
	name string,
	filters map[string]string,
	now time.Time,
) (*SavedView, error) {
	name = strings.TrimSpace(name)
	var nameErr, filtersErr error
	switch {
	case name == "":
		nameErr = errs.NewValueIsRequiredError("name")
	case len(name) > MaxNameLength:
		nameErr = errs.NewValueIsOutOfRangeError("name length", len(name), 1, MaxNameLength)
	}
	if len(filters) > MaxFilters {
		filtersErr = errs.NewValueIsOutOfRangeError("filters", len(filters), 0, MaxFilters)
	}
	_, scopeErr := ParseScope(string(scope))
	if err := errors.Join(id.Validate(), ownerID.Validate(), scopeErr, nameErr, filtersErr); err != nil {
		return nil, err
	}

	clean := make(map[string]string, len(filters))
	for k, v := range filters {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		clean[k] = strings.TrimSpace(v)
	}
	return &SavedView{
		id:        id,
		ownerID:   ownerID,
		scope:     scope,
		name:      name,
		filters:   clean,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (v *SavedView) Validate() error {
	if v == nil {
		return ErrSavedViewIsNotConstructed
	}
	return v.guard.Validate(ErrSavedViewIsNotConstructed)
}

func (v *SavedView) ID() kernel.UUID { return v.id }
func (v *SavedView) OwnerID() kernel.UUID { return v.ownerID }
func (v *SavedView) Scope() Scope { return v.scope }
func (v *SavedView) Name() string { return v.name }
func (v *SavedView) CreatedAt() time.Time { return v.createdAt }

func (v *SavedView) Filters() map[string]string {
	out := make(map[string]string, len(v.filters))
	for k, val := range v.filters {
		out[k] = val
	}
	return out
}
