package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/pkg/errs"
)

// RowError reports why one spreadsheet row was skipped. Row counts spreadsheet
// lines, so the first data row is 2.
type RowError struct {
	Row     int
	Message string
}

type ImportResult struct {
	Created int
	Updated int
	Errors  []RowError
}

// ImportProductsCommandHandler upserts rows by SKU. Rows failing validation,
// ownership or uniqueness checks are reported and skipped; the remaining rows are
// written in one transaction. Storage errors abort the whole import.
type ImportProductsCommandHandler struct {
	uowFactory CatalogUoWFactory
	audit      AuditTrail
}

func NewImportProductsCommandHandler(uowFactory CatalogUoWFactory, audit AuditTrail) ImportProductsCommandHandler {
	return ImportProductsCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h ImportProductsCommandHandler) Handle(ctx context.Context, command ImportProductsCommand) (ImportResult, error) {
	if err := command.Validate(); err != nil {
		return ImportResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ImportResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products := uow.ProductRepository()
	actor := command.Actor()
	now := time.Now()

	var result ImportResult
	seenSKU := make(map[string]int)
	seenSlug := make(map[string]int)

	for i, row := range command.Rows() {
		rowNo := i + 2
		if isBlankRow(row) {
			continue
		}

		f, err := product.FieldsFromSheetRow(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
			continue
		}
		if prev, ok := seenSKU[f.SKU]; ok {
			result.Errors = append(result.Errors, RowError{Row: rowNo,
				Message: fmt.Sprintf("sku %s already appears in row %d", f.SKU, prev)})
			continue
		}
		if prev, ok := seenSlug[f.Slug]; ok {
			result.Errors = append(result.Errors, RowError{Row: rowNo,
				Message: fmt.Sprintf("slug %s already appears in row %d", f.Slug, prev)})
			continue
		}

		existing, err := products.GetBySKU(ctx, f.SKU)
		switch {
		case err == nil:
			if err = existing.CanBeManagedBy(actor); err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
				continue
			}
			f.Description = existing.Fields().Description
			if err = existing.Update(f, now); err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
				continue
			}
			if err = products.Update(ctx, existing); err != nil {
				if isRowProblem(err) {
					result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
					continue
				}
				return ImportResult{}, rowFailure(rowNo, err)
			}
			result.Updated++
		case errors.Is(err, errs.ErrObjectNotFound):
			p, err := product.NewProduct(kernel.NewUUID(), actor.ID, f, now)
			if err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
				continue
			}
			if err = products.Add(ctx, p); err != nil {
				if isRowProblem(err) {
					result.Errors = append(result.Errors, RowError{Row: rowNo, Message: err.Error()})
					continue
				}
				return ImportResult{}, rowFailure(rowNo, err)
			}
			result.Created++
		default:
			return ImportResult{}, err
		}

		seenSKU[f.SKU] = rowNo
		seenSlug[f.Slug] = rowNo
	}

	if err := uow.Commit(ctx); err != nil {
		return ImportResult{}, err
	}

	h.audit.Record(ctx, actor, "product.import", audit.EntityProduct, "", map[string]string{
		"created": strconv.Itoa(result.Created),
		"updated": strconv.Itoa(result.Updated),
		"skipped": strconv.Itoa(len(result.Errors)),
	})
	return result, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isRowProblem tells a rejected row apart from a storage failure.
func isRowProblem(err error) bool {
	return errors.Is(err, errs.ErrAlreadyExists) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func rowFailure(row int, err error) error {
	return fmt.Errorf("row %d: %w", row, err)
}
