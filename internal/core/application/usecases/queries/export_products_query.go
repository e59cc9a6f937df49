package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
	"roboshop/internal/pkg/spreadsheet"

	"gorm.io/gorm"
)

// MaxExportRows bounds a single export file. Larger exports are rejected
// rather than cut short.
const MaxExportRows = 50000

// tooManyRows is returned when a filter matches more than limit rows.
func tooManyRows(limit int) error {
	return errs.NewValueIsInvalidErrorWithCause("filter",
		fmt.Errorf("more than %d rows match, narrow the filter to export", limit))
}

var ErrExportProductsQueryIsNotConstructed = errors.New(
	"ExportProductsQuery must be created via NewExportProductsQuery constructor",
)

// ExportFile is a generated download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

type ExportProductsQuery struct {
	filter ProductFilter
	format spreadsheet.Format

	guard guard.ConstructorGuard
}

func NewExportProductsQuery(actor user.Actor, filter ProductFilter, format string) (ExportProductsQuery, error) {
	if err := actor.RequireRole(user.Seller, user.Admin); err != nil {
		return ExportProductsQuery{}, err
	}
	f, err := spreadsheet.ParseFormat(format)
	if err != nil {
		return ExportProductsQuery{}, err
	}
	return ExportProductsQuery{filter: filter, format: f, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportProductsQuery) Validate() error {
	return q.guard.Validate(ErrExportProductsQueryIsNotConstructed)
}

type ExportProductsQueryHandler struct {
	db      *gorm.DB
	maxRows int
}

func NewExportProductsQueryHandler(db *gorm.DB) ExportProductsQueryHandler {
	return ExportProductsQueryHandler{db: db, maxRows: MaxExportRows}
}

// WithMaxRows replaces MaxExportRows.
func (h ExportProductsQueryHandler) WithMaxRows(n int) ExportProductsQueryHandler {
	h.maxRows = n
	return h
}

// Handle writes one row per matching product in SKU order, using the same
// columns the importer reads.
func (h ExportProductsQueryHandler) Handle(ctx context.Context, query ExportProductsQuery) (ExportFile, error) {
	if err := query.Validate(); err != nil {
		return ExportFile{}, err
	}

	var rows []productRow
	err := filterProducts(h.db.WithContext(ctx).Table("products"), query.filter).
		Order("sku").
		Limit(h.maxRows + 1).
		Find(&rows).Error
	if err != nil {
		return ExportFile{}, err
	}
	if len(rows) > h.maxRows {
		return ExportFile{}, tooManyRows(h.maxRows)
	}

	products, err := productsFromRows(rows)
	if err != nil {
		return ExportFile{}, err
	}
	sheet := make([][]string, 0, len(products))
	for _, p := range products {
		sheet = append(sheet, p.SheetRow())
	}

	data, err := spreadsheet.Encode(query.format, product.SheetHeader, sheet)
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		Name:        fmt.Sprintf("products-%s.%s", time.Now().UTC().Format("20060102"), query.format.Extension()),
		ContentType: query.format.ContentType(),
		Data:        data,
		Rows:        len(sheet),
	}, nil
}
