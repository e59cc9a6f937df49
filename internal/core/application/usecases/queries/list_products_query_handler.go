package queries

import (
	"context"

	"roboshop/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// ProductPage is one page of catalog results with the total match count.
type ProductPage struct {
	Items []*product.Product
	Total int64
	Page  Page
}

type ListProductsQueryHandler struct {
	db *gorm.DB
}

func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) (ProductPage, error) {
	if err := query.Validate(); err != nil {
		return ProductPage{}, err
	}

	base := filterProducts(h.db.WithContext(ctx).Table("products"), query.Filter())

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ProductPage{}, err
	}

	var rows []productRow
	err := orderProducts(base.Session(&gorm.Session{}), query.Sort()).
		Offset(query.Page().Offset()).
		Limit(query.Page().Limit()).
		Find(&rows).Error
	if err != nil {
		return ProductPage{}, err
	}

	items, err := productsFromRows(rows)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Items: items, Total: total, Page: query.Page()}, nil
}

func filterProducts(db *gorm.DB, f ProductFilter) *gorm.DB {
	if !f.IncludeInactive {
		db = db.Where("active")
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		db = db.Where("(name ILIKE ? OR sku ILIKE ? OR brand ILIKE ?)", p, p, p)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Tag != "" {
		db = db.Where("? = ANY(tags)", f.Tag)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", f.MinPrice.Amount())
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", f.MaxPrice.Amount())
	}
	if f.InStock {
		db = db.Where("stock > 0")
	}
	if f.SellerID != nil {
		db = db.Where("seller_id = ?", f.SellerID.Bytes())
	}
	return db
}

func orderProducts(db *gorm.DB, sort ProductSort) *gorm.DB {
	switch sort {
	case SortPriceAsc:
		return db.Order("price ASC, id")
	case SortPriceDesc:
		return db.Order("price DESC, id")
	case SortName:
		return db.Order("lower(name) ASC, id")
	case SortNewest:
	}
	return db.Order("created_at DESC, id")
}
