package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// GetURLFields checks which query parameters are set and which query
// parameters are set and can be used directly in a gorm query
//
// queryFields contains all field names that can be used directly
// in a gorm Where statament as argument to specify the fields filtered on.
// As gorm uses interface{} as type for the Where statement, we cannot use
// a []string type here.
//
// setFields returns a []string with all field names set in the query parameters.
// This can be useful to filter for zero values without defining them as pointer
// fields in gorm.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")

		// filterField is a struct tag that allows to specify if the field
		// is used to filter resources directly or if it is a meta field
		// that is processed by explicit logic outside of GetURLFields
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}
	return queryFields, setFields
}

// GetBodyFields returns the names of the fields of resource that are
// set in the request body.
//
// Every key in the body must map to a json tag of resource, otherwise
// ErrUnknownField is returned. An empty object returns ErrNoFieldsToUpdate.
//
// This function reads and copies the request body, it must always
// be called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return []any{}, ErrRequestBodyEmpty
	}

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []any{}, ErrInvalidBody
	}

	allowed := make(map[string]string)
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		param := strings.Split(val.Type().Field(i).Tag.Get("json"), ",")[0]
		if param == "" || param == "-" {
			continue
		}
		allowed[param] = val.Type().Field(i).Name
	}

	var bodyFields []any
	var unknown []string
	for key := range mapBody {
		field, ok := allowed[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		bodyFields = append(bodyFields, field)
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)
		return []any{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}

	if len(bodyFields) == 0 {
		return []any{}, ErrNoFieldsToUpdate
	}

	return sortByStructOrder(bodyFields, val.Type()), nil
}

// sortByStructOrder orders field names as they are declared so that the
// result does not depend on map iteration.
func sortByStructOrder(fields []any, t reflect.Type) []any {
	set := make(map[any]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}

	ordered := make([]any, 0, len(fields))
	for i := 0; i < t.NumField(); i++ {
		if set[t.Field(i).Name] {
			ordered = append(ordered, t.Field(i).Name)
		}
	}
	return ordered
}
