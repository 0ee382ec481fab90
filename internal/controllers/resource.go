package controllers

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resource interface {
	models.Account | models.Budget | models.Category | models.Goal | models.Transaction
}

type scope func(userID uuid.UUID) func(*gorm.DB) *gorm.DB

// findResource returns the resource with the ID from the request path
// if it is within the scope of the authenticated user.
func findResource[R resource](co Controller, c *gin.Context, s scope) (R, error) {
	var r R

	p, err := principal(c)
	if err != nil {
		return r, err
	}

	id, err := bindID(c)
	if err != nil {
		return r, err
	}

	err = co.DB.Scopes(s(p.ID)).First(&r, "id = ?", id).Error
	return r, err
}

// optionsDetail returns the allowed HTTP methods for a resource
// if it exists.
func optionsDetail[R resource](co Controller, c *gin.Context, s scope) {
	_, err := findResource[R](co, c, s)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}

// deleteResource deletes the resource with the ID from the request path.
//
// Deleting is idempotent: resources that do not exist or do not belong
// to the user are reported as zero deleted resources.
func deleteResource[R resource](co Controller, c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	id, err := bindID(c)
	if err != nil {
		abort(c, err)
		return
	}

	var r R
	result := co.DB.Scopes(models.OwnedBy(p.ID)).Where("id = ?", id).Delete(&r)
	if result.Error != nil {
		abort(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: result.RowsAffected})
}

// owned is implemented by request bodies that can carry a user ID.
type owned interface {
	owner() *uuid.UUID
}

// updateFields binds the request body to data and returns the names of
// the fields it sets.
//
// A user ID in the body must be the one of the authenticated user. It
// is never updated.
func updateFields(c *gin.Context, data owned) ([]any, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}

	fields, err := httputil.GetBodyFields(c, data)
	if err != nil {
		return nil, err
	}

	if err := httputil.BindData(c, data); err != nil {
		return nil, err
	}

	if err := httputil.CheckNotNull(fields, data); err != nil {
		return nil, err
	}

	if err := checkOwner(p, data.owner()); err != nil {
		return nil, err
	}

	fields = withoutField(fields, "UserID")
	if len(fields) == 0 {
		return nil, httputil.ErrNoFieldsToUpdate
	}

	return fields, nil
}

func value[T any](p *T) T {
	var v T
	if p != nil {
		v = *p
	}
	return v
}

func trimmed(p *string) string {
	return strings.TrimSpace(value(p))
}
