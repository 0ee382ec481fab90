// Package controllers implements the HTTP handlers of the API.
package controllers

import (
	"time"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	google_uuid "github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	DB     *gorm.DB
	Tokens *auth.Issuer

	// Now returns the current time, used for report windows.
	// Defaults to time.Now.
	Now func() time.Time
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}
	return co.Now()
}

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// bindID returns the ID from the request path.
func bindID(c *gin.Context) (google_uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return google_uuid.Nil, httputil.ErrInvalidUUID
	}

	return uri.ID.UUID, nil
}

// principal returns the authenticated user of the request.
//
// All routes calling this are behind auth.Middleware, so a missing
// principal is reported as unauthorized.
func principal(c *gin.Context) (auth.Principal, error) {
	p, ok := auth.User(c)
	if !ok {
		return auth.Principal{}, auth.ErrUnauthorized
	}
	return p, nil
}

// checkOwner verifies that a user ID sent in a request body, if any,
// is the one of the authenticated user.
func checkOwner(p auth.Principal, userID *google_uuid.UUID) error {
	if userID != nil && *userID != p.ID {
		return errUserMismatch
	}
	return nil
}

// withoutField removes a field name from the list returned by
// httputil.GetBodyFields.
func withoutField(fields []any, name string) []any {
	result := make([]any, 0, len(fields))
	for _, f := range fields {
		if f != name {
			result = append(result, f)
		}
	}
	return result
}

// Pagination is embedded in all list filters.
type Pagination struct {
	Limit  *int `form:"limit" binding:"omitempty,min=1" minimum:"1"` // Maximum number of resources to return. Defaults to 50, values above 200 are reduced to 200
	Offset int  `form:"offset" binding:"min=0" minimum:"0"`          // Number of resources to skip
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

func (p Pagination) limit() int {
	if p.Limit == nil {
		return defaultLimit
	}

	return min(*p.Limit, maxLimit)
}

// DeleteResponse reports how many resources were deleted.
type DeleteResponse struct {
	Deleted int64 `json:"deleted" example:"1"`
}
