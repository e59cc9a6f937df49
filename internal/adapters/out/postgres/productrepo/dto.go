// Package productrepo persists catalog products.
package productrepo

import (
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductDTO stores tags and image urls as postgres text arrays.
type ProductDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU            string    `gorm:"uniqueIndex;not null"`
	Name           string    `gorm:"not null"`
	Slug           string    `gorm:"uniqueIndex;not null"`
	Description    string
	Category       string `gorm:"index"`
	Brand          string
	Price          int64          `gorm:"not null"`
	CompareAtPrice int64          `gorm:"not null;default:0"`
	Stock          int            `gorm:"not null"`
	Tags           pq.StringArray `gorm:"type:text[]"`
	ImageURLs      pq.StringArray `gorm:"type:text[];column:image_urls"`
	SellerID       uuid.UUID      `gorm:"type:uuid;index;not null"`
	Active         bool           `gorm:"index;not null"`
	CreatedAt      time.Time      `gorm:"index"`
	UpdatedAt      time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	f := p.Fields()
	return ProductDTO{
		ID:             p.ID().Bytes(),
		SKU:            f.SKU,
		Name:           f.Name,
		Slug:           f.Slug,
		Description:    f.Description,
		Category:       f.Category,
		Brand:          f.Brand,
		Price:          f.Price.Amount(),
		CompareAtPrice: f.CompareAtPrice.Amount(),
		Stock:          f.Stock,
		Tags:           pq.StringArray(f.Tags),
		ImageURLs:      pq.StringArray(f.ImageURLs),
		SellerID:       p.SellerID().Bytes(),
		Active:         f.Active,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// ToDomain is shared with the catalog read side, which scans the same rows.
func ToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	compareAt, err := kernel.NewMoney(dto.CompareAtPrice)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, sellerID, product.Fields{
		SKU:            dto.SKU,
		Name:           dto.Name,
		Slug:           dto.Slug,
		Description:    dto.Description,
		Category:       dto.Category,
		Brand:          dto.Brand,
		Price:          price,
		CompareAtPrice: compareAt,
		Stock:          dto.Stock,
		Tags:           []string(dto.Tags),
		ImageURLs:      []string(dto.ImageURLs),
		Active:         dto.Active,
	}, dto.CreatedAt, dto.UpdatedAt)
}
