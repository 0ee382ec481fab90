package controllers

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a budget with the amount spent in its category and month.
type Budget struct {
	models.Budget
	Spent   decimal.Decimal `json:"spent" example:"350"`    // Sum of the outflow transactions in the category and month
	Overrun bool            `json:"overrun" example:"true"` // Whether more than the limit has been spent
}

type BudgetCreate struct {
	UserID      *uuid.UUID      `json:"user_id"`                                                                               // Optional, must be the authenticated user
	CategoryID  uuid.UUID       `json:"category_id" binding:"required" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`         // Category of the budget
	Month       *types.Month    `json:"month" binding:"required" swaggertype:"string" example:"2025-03"`                       // Month in YYYY-MM or YYYY-MM-DD format
	LimitAmount decimal.Decimal `json:"limit_amount" binding:"required,gt=0" example:"300" multipleOf:"0.00000001"`            // Spending limit for the month
}

func (editable BudgetCreate) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID:      userID,
		CategoryID:  editable.CategoryID,
		Month:       value(editable.Month),
		LimitAmount: editable.LimitAmount,
	}
}

// BudgetEditable contains the fields that can be updated. Only fields
// present in the request body are updated.
type BudgetEditable struct {
	UserID      *uuid.UUID       `json:"user_id" nullable:"true"`
	CategoryID  *uuid.UUID       `json:"category_id" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
	Month       *types.Month     `json:"month" swaggertype:"string" example:"2025-03"`
	LimitAmount *decimal.Decimal `json:"limit_amount" binding:"omitnil,gt=0" example:"300"`
}

func (editable BudgetEditable) owner() *uuid.UUID {
	return editable.UserID
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		CategoryID:  value(editable.CategoryID),
		Month:       value(editable.Month),
		LimitAmount: value(editable.LimitAmount),
	}
}

type BudgetQueryFilter struct {
	Month      string       `form:"month" filterField:"false"` // Filter by month, YYYY-MM or YYYY-MM-DD
	CategoryID ez_uuid.UUID `form:"category"`                  // Filter by category ID
	Pagination
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		CategoryID: f.CategoryID.UUID,
	}
}
