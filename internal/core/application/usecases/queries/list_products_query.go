package queries

import (
	"errors"
	"fmt"
	"strings"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// ProductSort orders catalog listings.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

func ParseProductSort(s string) (ProductSort, error) {
	switch ps := ProductSort(strings.ToLower(strings.TrimSpace(s))); ps {
	case "":
		return SortNewest, nil
	case SortNewest, SortPriceAsc, SortPriceDesc, SortName:
		return ps, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a product sort", s))
	}
}

// ProductFilter narrows the catalog. Zero values match everything.
type ProductFilter struct {
	Search   string
	Category string
	Tag      string
	MinPrice *kernel.Money
	MaxPrice *kernel.Money
	InStock  bool
	SellerID *kernel.UUID

	// IncludeInactive shows unpublished products. Only honoured for staff.
	IncludeInactive bool
}

// ListProductsQuery pages through the catalog. Anonymous storefront visitors use
// an actor with an empty role.
type ListProductsQuery struct {
	actor  user.Actor
	filter ProductFilter
	sort   ProductSort
	page   Page

	guard guard.ConstructorGuard
}

func NewListProductsQuery(actor user.Actor, filter ProductFilter, sort string, page Page) (ListProductsQuery, error) {
	parsed, err := ParseProductSort(sort)
	if err != nil {
		return ListProductsQuery{}, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MaxPrice.Less(*filter.MinPrice) {
		return ListProductsQuery{}, errs.NewValueIsInvalidErrorWithCause("price range",
			errors.New("max price is below min price"))
	}
	if !actor.Role.IsStaff() {
		filter.IncludeInactive = false
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))
	return ListProductsQuery{
		actor:  actor,
		filter: filter,
		sort:   parsed,
		page:   NewPage(page.Number, page.Size),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) Filter() ProductFilter { return q.filter }
func (q ListProductsQuery) Sort() ProductSort { return q.sort }
func (q ListProductsQuery) Page() Page { return q.page }
