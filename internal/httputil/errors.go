package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrUnknownField     = errors.New("the request body contains a field that cannot be set")
	ErrInvalidQuery     = errors.New("the query string contains invalid values")
)
