package queries

import (
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// productRow mirrors the products table for read-side scans.
type productRow struct {
	ID             uuid.UUID
	SKU            string
	Name           string
	Slug           string
	Description    string
	Category       string
	Brand          string
	Price          int64
	CompareAtPrice int64
	Stock          int
	Tags           pq.StringArray `gorm:"type:text[]"`
	ImageURLs      pq.StringArray `gorm:"type:text[];column:image_urls"`
	SellerID       uuid.UUID
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r productRow) toDomain() (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(r.SellerID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return nil, err
	}
	compareAt, err := kernel.NewMoney(r.CompareAtPrice)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, sellerID, product.Fields{
		SKU:            r.SKU,
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		Category:       r.Category,
		Brand:          r.Brand,
		Price:          price,
		CompareAtPrice: compareAt,
		Stock:          r.Stock,
		Tags:           []string(r.Tags),
		ImageURLs:      []string(r.ImageURLs),
		Active:         r.Active,
	}, r.CreatedAt, r.UpdatedAt)
}

func productsFromRows(rows []productRow) ([]*product.Product, error) {
	products := make([]*product.Product, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func statusName(status int) string {
	return order.Status(status).String()
}

// formatMinor renders stored minor units as decimal major units.
func formatMinor(amount int64) string {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return ""
	}
	return m.String()
}
