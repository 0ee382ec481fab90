package controllers

import (
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/google/uuid"
)

type CategoryCreate struct {
	UserID *uuid.UUID `json:"user_id"`                                                                               // Optional, must be the authenticated user
	Name   string     `json:"name" binding:"required,notblank,max=255" example:"Groceries"`                          // Name of the category
	Type   string     `json:"type" binding:"required,oneof=income expense" example:"expense" enums:"income,expense"` // Type of the category
	Icon   string     `json:"icon" binding:"max=64" example:"cart"`                                                  // Icon name for clients
}

func (editable CategoryCreate) model(userID uuid.UUID) models.Category {
	return models.Category{
		UserID: &userID,
		Name:   editable.Name,
		Type:   editable.Type,
		Icon:   editable.Icon,
	}
}

// CategoryEditable contains the fields that can be updated. Only fields
// present in the request body are updated.
type CategoryEditable struct {
	UserID *uuid.UUID `json:"user_id" nullable:"true"`
	Name   *string    `json:"name" binding:"omitnil,notblank,max=255" example:"Groceries"`
	Type   *string    `json:"type" binding:"omitnil,oneof=income expense" example:"expense"`
	Icon   *string    `json:"icon" binding:"omitnil,max=64" nullable:"true" example:"cart"`
}

func (editable CategoryEditable) owner() *uuid.UUID {
	return editable.UserID
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name: trimmed(editable.Name),
		Type: value(editable.Type),
		Icon: trimmed(editable.Icon),
	}
}

type CategoryQueryFilter struct {
	Type            string       `form:"type" binding:"omitempty,oneof=income expense"` // Filter by type
	UserID          ez_uuid.UUID `form:"user_id" filterField:"false"`                   // Must be the authenticated user if set
	IncludeDefaults *bool        `form:"include_defaults" filterField:"false"`          // Include the global default categories. Defaults to true
	Pagination
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Type: strings.TrimSpace(f.Type),
	}
}

func (f CategoryQueryFilter) includeDefaults() bool {
	return f.IncludeDefaults == nil || *f.IncludeDefaults
}
