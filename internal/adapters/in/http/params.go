package http

import (
	"errors"
	"net/url"
	"time"

	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var errMalformedTime = errors.New("must be an RFC 3339 timestamp or a YYYY-MM-DD date")

// pathUUID binds a simple-style path parameter holding a UUID.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// queryParams holds the optional form-style query parameters shared by listings.
type queryParams struct {
	values url.Values
	err    error
}

func newQueryParams(c echo.Context) *queryParams {
	return &queryParams{values: c.QueryParams()}
}

func (q *queryParams) bind(name string, dst any) {
	if q.err != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, name, q.values, dst); err != nil {
		q.err = errs.NewValueIsInvalidErrorWithCause(name, err)
	}
}

func (q *queryParams) String(name string) string {
	var v *string
	q.bind(name, &v)
	if v == nil {
		return ""
	}
	return *v
}

func (q *queryParams) Int(name string) *int {
	var v *int
	q.bind(name, &v)
	return v
}

func (q *queryParams) Int64(name string) *int64 {
	var v *int64
	q.bind(name, &v)
	return v
}

func (q *queryParams) Bool(name string) *bool {
	var v *bool
	q.bind(name, &v)
	return v
}

// Time accepts RFC 3339 timestamps or plain dates, which mean midnight UTC.
func (q *queryParams) Time(name string) *time.Time {
	raw := q.String(name)
	if raw == "" || q.err != nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	q.err = errs.NewValueIsInvalidErrorWithCause(name, errMalformedTime)
	return nil
}

func (q *queryParams) UUID(name string) *kernel.UUID {
	raw := q.String(name)
	if raw == "" || q.err != nil {
		return nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		q.err = errs.NewValueIsInvalidErrorWithCause(name, err)
		return nil
	}
	return &id
}

func (q *queryParams) Money(name string) *kernel.Money {
	v := q.Int64(name)
	if v == nil || q.err != nil {
		return nil
	}
	m, err := kernel.NewMoney(*v)
	if err != nil {
		q.err = errs.NewValueIsInvalidErrorWithCause(name, err)
		return nil
	}
	return &m
}

func (q *queryParams) Page() queries.Page {
	number, size := q.Int("page"), q.Int("pageSize")
	var n, s int
	if number != nil {
		n = *number
	}
	if size != nil {
		s = *size
	}
	return queries.NewPage(n, s)
}

// Err returns the first binding error.
func (q *queryParams) Err() error {
	return q.err
}
