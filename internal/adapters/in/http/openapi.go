package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/spreadsheet"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiDocument []byte

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

var registerDecodersOnce sync.Once

// requestValidation checks parameters and bodies of documented operations.
// Requests the document does not describe are passed through untouched.
func requestValidation(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	registerDecodersOnce.Do(func() {
		// Browsers label uploaded workbooks with their own media types.
		for _, contentType := range []string{spreadsheet.XLSX.ContentType(), "application/vnd.ms-excel"} {
			openapi3filter.RegisterBodyDecoder(contentType, openapi3filter.FileBodyDecoder)
		}
	})

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", validationCause(validateErr))
			}
			return next(c)
		}
	}, nil
}

func validationCause(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return err
	}

	msg := reqErr.Reason
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		msg = schemaErr.Reason
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			msg = strings.Join(pointer, ".") + ": " + msg
		}
	}
	if reqErr.Parameter != nil {
		msg = fmt.Sprintf("parameter %q %s", reqErr.Parameter.Name, msg)
	}
	if msg == "" {
		return err
	}
	return errors.New(msg)
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerSwaggerDoc publishes doc to the /swagger UI. swag allows one
// registration per process.
func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}
