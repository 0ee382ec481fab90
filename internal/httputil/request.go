package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BindData binds the JSON body of the request to data and runs the
// binding validations declared on it.
func BindData(c *gin.Context, data any) error {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewFieldErrors(validationErrors)
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return FieldErrors{
				jsonUnmarshalTypeError.Field: "must be of type " + jsonUnmarshalTypeError.Type.String(),
			}
		}

		if fieldErrors := unmarshalFieldErrors(body, reflect.TypeOf(data)); fieldErrors != nil {
			return fieldErrors
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindQuery binds the query string to the filter struct.
func BindQuery(c *gin.Context, filter any) error {
	if err := c.ShouldBindQuery(filter); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewFieldErrors(validationErrors)
		}

		return fmt.Errorf("%w: %s", ErrInvalidQuery, err)
	}

	return nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// unmarshalFieldErrors decodes every field of body on its own to find the
// ones rejected by a custom unmarshaler. It returns nil if the body is not
// a JSON object or no single field fails.
func unmarshalFieldErrors(body []byte, t reflect.Type) FieldErrors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	errs := FieldErrors{}
	collectFieldErrors(raw, t, errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func collectFieldErrors(raw map[string]json.RawMessage, t reflect.Type, errs FieldErrors) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]

		if field.Anonymous && name == "" {
			collectFieldErrors(raw, field.Type, errs)
			continue
		}

		value, ok := raw[name]
		if !ok || name == "-" {
			continue
		}

		if err := json.Unmarshal(value, reflect.New(field.Type).Interface()); err != nil {
			errs[name] = fieldUnmarshalText(name, field.Type, err)
		}
	}
}

func fieldUnmarshalText(name string, t reflect.Type, err error) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var typeError *json.UnmarshalTypeError
	switch {
	case t == decimalType:
		return fmt.Sprintf("%s must be a decimal number", name)
	case errors.As(err, &typeError):
		return fmt.Sprintf("%s must be of type %s", name, typeError.Type.String())
	}

	return fmt.Sprintf("%s is not valid: %s", name, err)
}
