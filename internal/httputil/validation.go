package httputil

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	validators "github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FieldErrors maps the JSON name of a field to the reason it was rejected.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := maps.Keys(f)
	slices.Sort(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, f[k])
	}

	return "invalid input: " + strings.Join(messages, "; ")
}

// NewFieldErrors converts validator errors to FieldErrors.
func NewFieldErrors(errs validator.ValidationErrors) FieldErrors {
	f := make(FieldErrors, len(errs))
	for _, e := range errs {
		f[e.Field()] = ValidationErrorToText(e)
	}
	return f
}

func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "max":
		if isNumber(e.Kind()) {
			return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	case "min":
		if isNumber(e.Kind()) {
			return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "email":
		return "Invalid email format"
	case "len":
		return fmt.Sprintf("%s must be %s characters long", e.Field(), e.Param())
	case "numeric":
		return fmt.Sprintf("%s must only contain digits", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "ne":
		return fmt.Sprintf("%s must not be %s", e.Field(), e.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// CheckNotNull returns FieldErrors for all fields that are set to null
// in the request body but cannot be null.
//
// fields are the struct field names as returned by GetBodyFields. Pointer
// fields of data that are nil are null in the request body unless they are
// tagged with nullable:"true".
func CheckNotNull(fields []any, data any) error {
	val := reflect.Indirect(reflect.ValueOf(data))
	errs := FieldErrors{}

	for _, f := range fields {
		name, ok := f.(string)
		if !ok {
			continue
		}

		field, ok := val.Type().FieldByName(name)
		if !ok || field.Type.Kind() != reflect.Pointer || field.Tag.Get("nullable") == "true" {
			continue
		}

		if val.FieldByName(name).IsNil() {
			param := strings.Split(field.Tag.Get("json"), ",")[0]
			errs[param] = fmt.Sprintf("%s cannot be null", param)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var registerOnce sync.Once

// RegisterValidation configures gin's validator. Field errors are reported
// by their JSON name, decimal amounts can be checked with numeric tags
// like gt=0 and notblank rejects whitespace-only strings.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.Split(field.Tag.Get("json"), ",")[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = field.Tag.Get("form")
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}
