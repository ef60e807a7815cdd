package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

// RecordValidator checks a raw payload against the schema for kind.
type RecordValidator interface {
	Validate(kind validation.Kind, raw map[string]any) (validation.Record, error)
	CheckFields(raw map[string]any, kinds ...validation.Kind) error
}

// Validate decodes the JSON body, checks it against the schema for kind and
// stores the normalised record on the context for the handler.
func Validate(v RecordValidator, kind validation.Kind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rec, err := ValidateBody(c, v, kind)
			if err != nil {
				return err
			}
			c.Set(recordKey, rec)
			return next(c)
		}
	}
}

// ValidateBody runs the body of c through v without storing the result.
func ValidateBody(c echo.Context, v RecordValidator, kind validation.Kind) (validation.Record, error) {
	raw, err := BindBody(c)
	if err != nil {
		return nil, err
	}
	return ValidateRaw(v, kind, raw)
}

// BindBody decodes the JSON body of c into a map. The body can be read once;
// handlers whose schema depends on stored state bind first, then call
// CheckFields and ValidateRaw.
func BindBody(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ValidateRaw checks an already decoded body against the schema for kind.
func ValidateRaw(v RecordValidator, kind validation.Kind, raw map[string]any) (validation.Record, error) {
	rec, err := v.Validate(kind, raw)
	if err != nil {
		countFailure(string(kind), err)
		return nil, err
	}
	return rec, nil
}

// CheckFields rejects keys that none of kinds declares. schema labels the
// failure metric.
func CheckFields(v RecordValidator, schema string, raw map[string]any, kinds ...validation.Kind) error {
	if err := v.CheckFields(raw, kinds...); err != nil {
		countFailure(schema, err)
		return err
	}
	return nil
}

func countFailure(schema string, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailuresTotal.WithLabelValues(schema, ve.Rule).Inc()
	}
}

// RecordFrom returns the record stored by Validate.
func RecordFrom(c echo.Context) (validation.Record, bool) {
	rec, ok := c.Get(recordKey).(validation.Record)
	return rec, ok
}
