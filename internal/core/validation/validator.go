// Package validation checks raw request payloads against ordered, per-record
// schemas and reports the first violated rule.
//
// A schema is a list of fields; a field is a type, a presence requirement and
// a list of rules. Rules are go-playground/validator tags paired with the
// message returned when the tag fails. Fields are checked in declaration
// order and rules in list order, so the reported message for a given input is
// stable.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// Kind names a schema.
type Kind string

const (
	Procurement Kind = "procurement"
	CashSale    Kind = "cash_sale"
	CreditSale  Kind = "credit_sale"
	User        Kind = "user"
	UserUpdate  Kind = "user_update"
	Login       Kind = "login"
)

// FieldType is the expected JSON shape of a field before rules run.
type FieldType uint8

const (
	String FieldType = iota
	Number
	Date
)

// Rule is a validator tag and the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

type Field struct {
	Name     string
	Type     FieldType
	Optional bool
	// Required is reported when a non-optional field is absent or empty.
	Required string
	// Invalid is reported when the value does not have the field's type.
	Invalid string
	Rules   []Rule
}

type Schema struct {
	Kind   Kind
	Fields []Field
}

// Record is a validated payload. Numbers are float64, dates are UTC
// time.Time and strings are passed through unchanged.
type Record map[string]any

func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

func (r Record) String(name string) string {
	s, _ := r[name].(string)
	return s
}

func (r Record) Float(name string) float64 {
	f, _ := r[name].(float64)
	return f
}

func (r Record) Time(name string) time.Time {
	t, _ := r[name].(time.Time)
	return t
}

// Validator evaluates payloads against a fixed set of schemas. It is safe
// for concurrent use; nothing is mutated after New returns.
type Validator struct {
	engine  *validator.Validate
	schemas map[Kind]Schema
}

// New builds a Validator for schemas. Every rule tag is checked against the
// engine up front so a typo fails at startup instead of on a request.
func New(schemas []Schema) (*Validator, error) {
	engine := validator.New()
	for tag, fn := range customTags {
		if err := engine.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}

	byKind := make(map[Kind]Schema, len(schemas))
	for _, s := range schemas {
		if _, dup := byKind[s.Kind]; dup {
			return nil, fmt.Errorf("validation: duplicate schema %q", s.Kind)
		}
		for _, f := range s.Fields {
			for _, r := range f.Rules {
				if err := checkTag(engine, f.Type, r.Tag); err != nil {
					return nil, fmt.Errorf("validation: %s.%s: %w", s.Kind, f.Name, err)
				}
			}
		}
		byKind[s.Kind] = s
	}

	return &Validator{engine: engine, schemas: byKind}, nil
}

// Validate checks raw against the schema for kind and returns the normalised
// record, or a *domain.ValidationError describing the first violation.
func (v *Validator) Validate(kind Kind, raw map[string]any) (Record, error) {
	schema, ok := v.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("validation: unknown schema %q", kind)
	}

	out := make(Record, len(schema.Fields))
	known := make(map[string]struct{}, len(schema.Fields))

	for _, f := range schema.Fields {
		known[f.Name] = struct{}{}

		val, present := raw[f.Name]
		if !present || val == nil || val == "" {
			if f.Optional {
				continue
			}
			return nil, &domain.ValidationError{Field: f.Name, Rule: "required", Message: f.Required}
		}

		norm, ok := coerce(f.Type, val)
		if !ok {
			return nil, &domain.ValidationError{Field: f.Name, Rule: "type", Message: f.Invalid}
		}

		for _, r := range f.Rules {
			if err := v.engine.Var(norm, r.Tag); err != nil {
				return nil, &domain.ValidationError{Field: f.Name, Rule: ruleName(r.Tag), Message: r.Message}
			}
		}
		out[f.Name] = norm
	}

	if err := unknownField(raw, known); err != nil {
		return nil, err
	}

	return out, nil
}

// CheckFields reports the first key of raw, in sorted order, that none of the
// schemas for kinds declares. It runs no other rule.
func (v *Validator) CheckFields(raw map[string]any, kinds ...Kind) error {
	known := make(map[string]struct{})
	for _, kind := range kinds {
		schema, ok := v.schemas[kind]
		if !ok {
			return fmt.Errorf("validation: unknown schema %q", kind)
		}
		for _, f := range schema.Fields {
			known[f.Name] = struct{}{}
		}
	}
	return unknownField(raw, known)
}

func unknownField(raw map[string]any, known map[string]struct{}) error {
	var extra []string
	for name := range raw {
		if _, ok := known[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return &domain.ValidationError{
		Field:   extra[0],
		Rule:    "unknown",
		Message: fmt.Sprintf("%q is not allowed", extra[0]),
	}
}

func coerce(t FieldType, val any) (any, bool) {
	switch t {
	case String:
		s, ok := val.(string)
		return s, ok
	case Number:
		return toNumber(val)
	case Date:
		return toDate(val)
	}
	return nil, false
}

func toNumber(val any) (any, bool) {
	var f float64
	switch n := val.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

// Zone-less datetimes are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func toDate(val any) (any, bool) {
	switch d := val.(type) {
	case time.Time:
		return d.UTC(), true
	case float64:
		return time.UnixMilli(int64(d)).UTC(), true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(d)); err == nil {
				return t.UTC(), true
			}
		}
	}
	return nil, false
}

var zeroOf = map[FieldType]any{
	String: "",
	Number: float64(0),
	Date:   time.Time{},
}

// checkTag runs tag once against the zero value of t. The engine panics on
// unknown tags, which is turned into an error here.
func checkTag(engine *validator.Validate, t FieldType, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bad tag %q: %v", tag, r)
		}
	}()
	_ = engine.Var(zeroOf[t], tag)
	return nil
}

func ruleName(tag string) string {
	if i := strings.IndexAny(tag, "=,"); i >= 0 {
		return tag[:i]
	}
	return tag
}
