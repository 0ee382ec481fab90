package controllers

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionCreate struct {
	UserID          *uuid.UUID      `json:"user_id"`                                                                                       // Optional, must be the authenticated user
	AccountID       *uuid.UUID      `json:"account_id" example:"9b1f27a4-4c5e-4f0b-8d0a-0e9f7f6a2b11"`                                    // Account of the transaction
	CategoryID      *uuid.UUID      `json:"category_id" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`                                   // Category of the transaction
	Amount          decimal.Decimal `json:"amount" binding:"required,ne=0" example:"42.17" multipleOf:"0.00000001"`                      // Amount, stored as sent
	Direction       string          `json:"direction" binding:"required,oneof=inflow outflow" example:"outflow" enums:"inflow,outflow"` // inflow counts as income, outflow as expense
	Description     *string         `json:"description" binding:"omitnil,max=2000" example:"Weekly groceries"`                          // Description
	TransactionDate *types.Date     `json:"transaction_date" binding:"required" swaggertype:"string" example:"2025-06-14"`               // Date in YYYY-MM-DD format
}

func (editable TransactionCreate) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:          userID,
		AccountID:       editable.AccountID,
		CategoryID:      editable.CategoryID,
		Amount:          editable.Amount,
		Direction:       editable.Direction,
		Description:     value(editable.Description),
		TransactionDate: value(editable.TransactionDate),
	}
}

// TransactionEditable contains the fields that can be updated. Only fields
// present in the request body are updated.
type TransactionEditable struct {
	UserID          *uuid.UUID       `json:"user_id" nullable:"true"`
	AccountID       *uuid.UUID       `json:"account_id" nullable:"true" example:"9b1f27a4-4c5e-4f0b-8d0a-0e9f7f6a2b11"`
	CategoryID      *uuid.UUID       `json:"category_id" nullable:"true" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitnil,ne=0" example:"42.17"`
	Direction       *string          `json:"direction" binding:"omitnil,oneof=inflow outflow" example:"outflow"`
	Description     *string          `json:"description" binding:"omitnil,max=2000" nullable:"true" example:"Weekly groceries"`
	TransactionDate *types.Date      `json:"transaction_date" swaggertype:"string" example:"2025-06-14"`
}

func (editable TransactionEditable) owner() *uuid.UUID {
	return editable.UserID
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		AccountID:       editable.AccountID,
		CategoryID:      editable.CategoryID,
		Amount:          value(editable.Amount),
		Direction:       value(editable.Direction),
		Description:     trimmed(editable.Description),
		TransactionDate: value(editable.TransactionDate),
	}
}

type TransactionQueryFilter struct {
	AccountID  ez_uuid.UUID `form:"accountId"`                                            // Filter by account ID
	CategoryID ez_uuid.UUID `form:"category"`                                             // Filter by category ID
	Direction  string       `form:"direction" binding:"omitempty,oneof=inflow outflow"`   // Filter by direction
	From       string       `form:"from" filterField:"false"`                             // Transactions on and after this date, YYYY-MM-DD
	To         string       `form:"to" filterField:"false"`                               // Transactions on and before this date, YYYY-MM-DD
	Pagination
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		AccountID:  f.AccountID.Ptr(),
		CategoryID: f.CategoryID.Ptr(),
		Direction:  f.Direction,
	}
}

type TransactionSummaryQuery struct {
	Range string `form:"range" binding:"omitempty,oneof=week month year" enums:"week,month,year" default:"month"` // Length of the periods
}
