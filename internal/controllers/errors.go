package controllers

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type httpError struct {
	Error  string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error
	Detail any    `json:"detail,omitempty"`                                               // Details, e.g. the reason per invalid field
}

var errUserMismatch = errors.New("user_id must be the ID of the authenticated user")

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrConflict) {
		return http.StatusConflict
	}

	if errors.Is(err, auth.ErrUnauthorized) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	code := status(err)
	body := httpError{Error: err.Error()}

	var fieldErrors httputil.FieldErrors
	if errors.As(err, &fieldErrors) {
		body.Error = "invalid input"
		body.Detail = fieldErrors
	}

	var dbErr models.DatabaseError
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err)

		if gin.Mode() != gin.ReleaseMode && errors.As(err, &dbErr) && dbErr.Cause != nil {
			body.Detail = dbErr.Cause.Error()
		}
	}

	c.AbortWithStatusJSON(code, body)
}
