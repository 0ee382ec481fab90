package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrConflict          = errors.New("the resource conflicts with an existing one")
	ErrReferenceNotFound = errors.New("a resource ID you specified does not identify an existing resource")
)

var (
	ErrEmailInUse      = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrBudgetNotUnique = fmt.Errorf("%w: budget already exists for this category and month", ErrConflict)
)

// DatabaseError is returned for failures of the database itself.
// It matches ErrGeneral and keeps the driver error for logs and
// non-production responses.
type DatabaseError struct {
	Cause error
}

func (e DatabaseError) Error() string {
	return ErrGeneral.Error()
}

func (e DatabaseError) Is(target error) bool {
	return target == ErrGeneral
}

func (e DatabaseError) Unwrap() error {
	return e.Cause
}
