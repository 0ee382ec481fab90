package controllers

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalCreate struct {
	UserID        *uuid.UUID      `json:"user_id"`                                                                      // Optional, must be the authenticated user
	Name          string          `json:"name" binding:"required,notblank,max=160" example:"Emergency fund"`            // Name of the goal
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required,gt=0" example:"5000" multipleOf:"0.00000001"` // Amount to save
	CurrentAmount decimal.Decimal `json:"current_amount" binding:"gte=0" example:"1250" multipleOf:"0.00000001"`        // Amount saved so far, defaults to 0
	TargetDate    *types.Date     `json:"target_date" swaggertype:"string" example:"2025-12-31"`                        // Optional date by which the target should be reached
}

func (editable GoalCreate) model(userID uuid.UUID) models.Goal {
	return models.Goal{
		UserID:        userID,
		Name:          editable.Name,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		TargetDate:    editable.TargetDate,
	}
}

// GoalEditable contains the fields that can be updated. Only fields
// present in the request body are updated.
type GoalEditable struct {
	UserID        *uuid.UUID       `json:"user_id" nullable:"true"`
	Name          *string          `json:"name" binding:"omitnil,notblank,max=160" example:"Emergency fund"`
	TargetAmount  *decimal.Decimal `json:"target_amount" binding:"omitnil,gt=0" example:"5000"`
	CurrentAmount *decimal.Decimal `json:"current_amount" binding:"omitnil,gte=0" example:"1250"`
	TargetDate    *types.Date      `json:"target_date" nullable:"true" swaggertype:"string" example:"2025-12-31"`
}

func (editable GoalEditable) owner() *uuid.UUID {
	return editable.UserID
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:          trimmed(editable.Name),
		TargetAmount:  value(editable.TargetAmount),
		CurrentAmount: value(editable.CurrentAmount),
		TargetDate:    editable.TargetDate,
	}
}

type GoalQueryFilter struct {
	Pagination
}
