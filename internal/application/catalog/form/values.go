// Package form implements the complement edit form: loading a complement into
// form values, validating submitted values and applying them through the
// catalog endpoints.
package form

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// Values of the "required" select
const (
	RequiredYes = "required"
	RequiredNo  = "false"
)

// ItemValues is one row of the items field array
type ItemValues struct {
	Name  string `json:"name" validate:"required,max=100"`
	Price string `json:"price" validate:"required,price"`
}

// Values are the complement form fields
type Values struct {
	Name       string       `json:"name" validate:"required,max=100"`
	MaxAmount  *int         `json:"maxAmount" validate:"required,min=0"`
	Required   string       `json:"required" validate:"required,oneof=required false"`
	Items      []ItemValues `json:"items" validate:"dive"`
	ProductIDs []string     `json:"productsIds" validate:"dive,uuid"`
}

// IsRequired reports whether the "required" select is set
func (v Values) IsRequired() bool {
	return v.Required == RequiredYes
}

// productIDs parses the selected product IDs. Values must be validated first.
func (v Values) productIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v.ProductIDs))
	seen := make(map[uuid.UUID]struct{}, len(v.ProductIDs))
	for _, raw := range v.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ValidationError holds per-field messages keyed by JSON path (e.g. "items[1].price")
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "form validation failed"
}

// newValidator builds the form validator: JSON names in field paths and a
// "price" tag accepting non-negative decimal strings
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := valueobject.ParsePrice(fl.Field().String())
		return err == nil
	})
	return v
}

// validate checks values against the form schema
func validate(v *validator.Validate, values Values) error {
	err := v.Struct(values)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldPath(fe)] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

// fieldPath strips the root struct name from the namespace ("Values.items[0].name" -> "items[0].name")
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "min":
		return "Must be at least " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "uuid":
		return "Invalid UUID format"
	case "price":
		return "Must be a price greater than or equal to 0"
	default:
		return "Invalid value"
	}
}
