package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
)

// SheetHeader is the column layout of product import and export files.
var SheetHeader = []string{
	"sku", "name", "slug", "category", "brand", "price", "compare_at_price", "stock", "tags", "image_urls", "active",
}

const listSeparator = "|"

// SheetRow renders the product as one spreadsheet row in SheetHeader order.
// Prices are decimal major units; list columns are joined with "|".
func (p *Product) SheetRow() []string {
	f := p.fields
	compareAt := ""
	if !f.CompareAtPrice.IsZero() {
		compareAt = f.CompareAtPrice.String()
	}
	return []string{
		f.SKU,
		f.Name,
		f.Slug,
		f.Category,
		f.Brand,
		f.Price.String(),
		compareAt,
		strconv.Itoa(f.Stock),
		strings.Join(f.Tags, listSeparator),
		strings.Join(f.ImageURLs, listSeparator),
		strconv.FormatBool(f.Active),
	}
}

// CheckSheetHeader verifies that a file's first row matches SheetHeader, ignoring case and padding.
func CheckSheetHeader(header []string) error {
	if len(header) < len(SheetHeader) {
		return errs.NewValueIsInvalidErrorWithCause("header",
			fmt.Errorf("expected columns %s", strings.Join(SheetHeader, ",")))
	}
	for i, want := range SheetHeader {
		if got := strings.ToLower(strings.TrimSpace(header[i])); got != want {
			return errs.NewValueIsInvalidErrorWithCause("header",
				fmt.Errorf("column %d is %q, expected %q", i+1, got, want))
		}
	}
	return nil
}

// FieldsFromSheetRow parses a row laid out as SheetHeader. Description is not
// part of the sheet and is left empty. Short rows are padded with empty cells.
func FieldsFromSheetRow(row []string) (Fields, error) {
	cells := make([]string, len(SheetHeader))
	copy(cells, row)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	price, priceErr := kernel.ParseMoney(cells[5])
	if priceErr != nil {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", priceErr)
	}

	var compareAt kernel.Money
	var compareErr error
	if cells[6] != "" {
		if compareAt, compareErr = kernel.ParseMoney(cells[6]); compareErr != nil {
			compareErr = errs.NewValueIsInvalidErrorWithCause("compare_at_price", compareErr)
		}
	}

	var stock int
	var stockErr error
	if cells[7] != "" {
		if stock, stockErr = strconv.Atoi(cells[7]); stockErr != nil {
			stockErr = errs.NewValueIsInvalidErrorWithCause("stock", stockErr)
		}
	}

	active, activeErr := parseFlag(cells[10])

	if err := errors.Join(priceErr, compareErr, stockErr, activeErr); err != nil {
		return Fields{}, err
	}

	f := normalize(Fields{
		SKU:            cells[0],
		Name:           cells[1],
		Slug:           cells[2],
		Category:       cells[3],
		Brand:          cells[4],
		Price:          price,
		CompareAtPrice: compareAt,
		Stock:          stock,
		Tags:           splitList(cells[8]),
		ImageURLs:      splitList(cells[9]),
		Active:         active,
	})
	if err := validate(f); err != nil {
		return Fields{}, err
	}
	return f, nil
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, listSeparator)
}

// parseFlag reads the active column; an empty cell means active.
func parseFlag(cell string) (bool, error) {
	switch strings.ToLower(cell) {
	case "", "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, errs.NewValueIsInvalidErrorWithCause("active", fmt.Errorf("%q is not a boolean", cell))
	}
}
