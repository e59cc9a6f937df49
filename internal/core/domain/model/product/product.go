package product

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
	MaxTags      = 20
	MaxImageURLs = 10
	MaxStock     = 1_000_000
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Fields is the editable part of a product.
type Fields struct {
	SKU            string
	Name           string
	Slug           string
	Description    string
	Category       string
	Brand          string
	Price          kernel.Money
	CompareAtPrice kernel.Money
	Stock          int
	Tags           []string
	ImageURLs      []string
	Active         bool
}

type Product struct {
	id        kernel.UUID
	sellerID  kernel.UUID
	fields    Fields
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewProduct creates a catalog entry owned by sellerID. An empty slug is derived from the name.
func NewProduct(id, sellerID kernel.UUID, f Fields, now time.Time) (*Product, error) {
	f = normalize(f)
	if err := errors.Join(id.Validate(), sellerID.Validate(), validate(f)); err != nil {
		return nil, err
	}
	now = now.UTC()
	return &Product{
		id:        id,
		sellerID:  sellerID,
		fields:    f,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(id, sellerID kernel.UUID, f Fields, createdAt, updatedAt time.Time) (*Product, error) {
	p, err := NewProduct(id, sellerID, f, createdAt)
	if err != nil {
		return nil, err
	}
	p.updatedAt = updatedAt.UTC()
	return p, nil
}

func normalize(f Fields) Fields {
	f.SKU = strings.ToUpper(strings.TrimSpace(f.SKU))
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	if f.Slug == "" {
		f.Slug = Slugify(f.Name)
	}
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.Brand = strings.TrimSpace(f.Brand)
	f.Tags = cleanList(f.Tags, strings.ToLower)
	f.ImageURLs = cleanList(f.ImageURLs, nil)
	return f
}

func cleanList(in []string, mapFn func(string) string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if mapFn != nil {
			v = mapFn(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func validate(f Fields) error {
	var skuErr, nameErr, slugErr, priceErr, compareErr, stockErr, tagsErr, imagesErr error
	if f.SKU == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	} else if strings.ContainsAny(f.SKU, " \t,") {
		skuErr = errs.NewValueIsInvalidErrorWithCause("sku", errors.New("must not contain spaces or commas"))
	}
	if f.Name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if !isSlug(f.Slug) {
		slugErr = errs.NewValueIsInvalidErrorWithCause("slug", fmt.Errorf("%q is not a valid slug", f.Slug))
	}
	if f.Price.IsZero() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", errors.New("must be greater than 0"))
	}
	if !f.CompareAtPrice.IsZero() && f.CompareAtPrice.Less(f.Price) {
		compareErr = errs.NewValueIsInvalidErrorWithCause("compare at price", errors.New("must not be below price"))
	}
	if f.Stock < 0 || f.Stock > MaxStock {
		stockErr = errs.NewValueIsOutOfRangeError("stock", f.Stock, 0, MaxStock)
	}
	if len(f.Tags) > MaxTags {
		tagsErr = errs.NewValueIsOutOfRangeError("tags", len(f.Tags), 0, MaxTags)
	}
	if len(f.ImageURLs) > MaxImageURLs {
		imagesErr = errs.NewValueIsOutOfRangeError("image urls", len(f.ImageURLs), 0, MaxImageURLs)
	}
	return errors.Join(skuErr, nameErr, slugErr, priceErr, compareErr, stockErr, tagsErr, imagesErr)
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) SellerID() kernel.UUID { return p.sellerID }
func (p *Product) SKU() string { return p.fields.SKU }
func (p *Product) Name() string { return p.fields.Name }
func (p *Product) Slug() string { return p.fields.Slug }
func (p *Product) Price() kernel.Money { return p.fields.Price }
func (p *Product) Stock() int { return p.fields.Stock }
func (p *Product) IsActive() bool { return p.fields.Active }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// Fields returns a copy of the editable fields.
func (p *Product) Fields() Fields {
	f := p.fields
	f.Tags = append([]string(nil), p.fields.Tags...)
	f.ImageURLs = append([]string(nil), p.fields.ImageURLs...)
	return f
}

// CanBeManagedBy reports whether actor may edit or delete the product.
// Sellers manage their own listings, admins manage everything.
func (p *Product) CanBeManagedBy(actor user.Actor) error {
	switch {
	case actor.Role == user.Admin:
		return nil
	case actor.Role == user.Seller && p.sellerID.IsEqual(actor.ID):
		return nil
	case actor.Role == user.Seller:
		return errs.NewForbiddenError("product belongs to another seller")
	default:
		return errs.NewForbiddenError("only sellers and admins manage products")
	}
}

// Update replaces the editable fields. The SKU may change; uniqueness is the repository's concern.
func (p *Product) Update(f Fields, now time.Time) error {
	f = normalize(f)
	if err := validate(f); err != nil {
		return err
	}
	p.fields = f
	p.updatedAt = now.UTC()
	return nil
}

// DecreaseStock reserves qty units for an order.
func (p *Product) DecreaseStock(qty int) error {
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, MaxStock)
	}
	if !p.fields.Active {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not available", p.fields.SKU))
	}
	if qty > p.fields.Stock {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", qty, 1, p.fields.Stock,
			fmt.Errorf("only %d of %s in stock", p.fields.Stock, p.fields.SKU))
	}
	p.fields.Stock -= qty
	return nil
}

// IncreaseStock returns qty units, e.g. when an order is cancelled. Stock stops
// at MaxStock so a restock never fails once the units are back.
func (p *Product) IncreaseStock(qty int) error {
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, MaxStock)
	}
	p.fields.Stock = min(p.fields.Stock+qty, MaxStock)
	return nil
}
