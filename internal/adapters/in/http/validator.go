package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"roboshop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs validator/v10 into echo's Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), describe(fe)))
	}
	return errors.Join(joined...)
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("is required")
	case "email":
		return errors.New("must be an email address")
	case "min", "gte":
		return fmt.Errorf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Errorf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Errorf("must be one of %s", fe.Param())
	case "uuid":
		return errors.New("must be a UUID")
	default:
		return fmt.Errorf("failed %s validation", fe.Tag())
	}
}

// bindAndValidate decodes the JSON body into dst and runs its validate tags.
func bindAndValidate(c interface {
	Bind(i any) error
	Validate(i any) error
}, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(dst)
}
