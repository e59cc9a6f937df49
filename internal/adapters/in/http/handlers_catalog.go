package http

import (
	"fmt"
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/spreadsheet"

	"github.com/labstack/echo/v4"
)

func productFilterFrom(q *queryParams) queries.ProductFilter {
	f := queries.ProductFilter{
		Search:   q.String("search"),
		Category: q.String("category"),
		Tag:      q.String("tag"),
		MinPrice: q.Money("minPrice"),
		MaxPrice: q.Money("maxPrice"),
		SellerID: q.UUID("sellerId"),
	}
	if inStock := q.Bool("inStock"); inStock != nil {
		f.InStock = *inStock
	}
	if includeInactive := q.Bool("includeInactive"); includeInactive != nil {
		f.IncludeInactive = *includeInactive
	}
	return f
}

// ListProducts handles GET /api/v1/products. Anonymous and customer callers only see active products.
func (s *Server) ListProducts(c echo.Context) error {
	q := newQueryParams(c)
	filter, sort, page := productFilterFrom(q), q.String("sort"), q.Page()
	if err := q.Err(); err != nil {
		return err
	}

	query, err := queries.NewListProductsQuery(actorFrom(c), filter, sort, page)
	if err != nil {
		return err
	}
	result, err := s.queries.ListProducts.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPage(result.Items, result.Total, result.Page, toProductResponse))
}

// GetProduct handles GET /api/v1/products/{productId}, which also accepts a slug.
func (s *Server) GetProduct(c echo.Context) error {
	query, err := queries.NewGetProductQuery(actorFrom(c), c.Param("productId"))
	if err != nil {
		return err
	}
	p, err := s.queries.GetProduct.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (s *Server) CreateProduct(c echo.Context) error {
	fields, err := productFieldsFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateProductCommand(actorFrom(c), fields)
	if err != nil {
		return err
	}
	created, err := s.commands.CreateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

func (s *Server) UpdateProduct(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}
	fields, err := productFieldsFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProductCommand(actorFrom(c), productID, fields)
	if err != nil {
		return err
	}
	updated, err := s.commands.UpdateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(updated))
}

func productFieldsFrom(c echo.Context) (product.Fields, error) {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return product.Fields{}, err
	}
	return req.fields()
}

func (s *Server) DeleteProduct(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteProductCommand(actorFrom(c), productID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportProducts handles GET /api/v1/products/export?format=csv|xlsx with the listing filters.
func (s *Server) ExportProducts(c echo.Context) error {
	q := newQueryParams(c)
	filter, format := productFilterFrom(q), q.String("format")
	if err := q.Err(); err != nil {
		return err
	}

	query, err := queries.NewExportProductsQuery(actorFrom(c), filter, format)
	if err != nil {
		return err
	}
	file, err := s.queries.ExportProducts.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(c, file)
}

// ImportProducts handles POST /api/v1/products/import with a multipart "file" field.
func (s *Server) ImportProducts(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("file", err)
	}
	if header.Size > spreadsheet.MaxFileSize {
		return errs.NewValueIsOutOfRangeError("file size", header.Size, 1, spreadsheet.MaxFileSize)
	}
	format, err := spreadsheet.FormatOf(header.Filename)
	if err != nil {
		return err
	}

	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	rows, err := spreadsheet.Read(src, format)
	if err != nil {
		return err
	}

	cmd, err := commands.NewImportProductsCommand(actorFrom(c), rows)
	if err != nil {
		return err
	}
	result, err := s.commands.ImportProducts.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImportResponse(result))
}

func attachment(c echo.Context, file queries.ExportFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
