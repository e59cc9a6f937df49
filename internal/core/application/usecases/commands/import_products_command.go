package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

// MaxImportRows caps the data rows of one import file.
const MaxImportRows = 5000

var ErrImportProductsCommandIsNotConstructed = errors.New(
	"ImportProductsCommand must be created via NewImportProductsCommand constructor",
)

// ImportProductsCommand upserts products from a decoded spreadsheet. The first
// row must be product.SheetHeader.
type ImportProductsCommand struct {
	actor user.Actor
	rows  [][]string

	guard guard.ConstructorGuard
}

func NewImportProductsCommand(actor user.Actor, rows [][]string) (ImportProductsCommand, error) {
	if err := actor.RequireRole(user.Seller, user.Admin); err != nil {
		return ImportProductsCommand{}, err
	}
	if len(rows) == 0 {
		return ImportProductsCommand{}, errs.NewValueIsRequiredError("file")
	}
	if err := product.CheckSheetHeader(rows[0]); err != nil {
		return ImportProductsCommand{}, err
	}
	if n := len(rows) - 1; n > MaxImportRows {
		return ImportProductsCommand{}, errs.NewValueIsOutOfRangeError("rows", n, 0, MaxImportRows)
	}
	return ImportProductsCommand{actor: actor, rows: rows[1:], guard: guard.NewConstructorGuard()}, nil
}

func (c ImportProductsCommand) Validate() error {
	return c.guard.Validate(ErrImportProductsCommandIsNotConstructed)
}

func (c ImportProductsCommand) Actor() user.Actor { return c.actor }

// Rows returns the data rows without the header.
func (c ImportProductsCommand) Rows() [][]string { return c.rows }
