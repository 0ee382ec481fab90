package controllers

import (
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountCreate struct {
	UserID      *uuid.UUID      `json:"user_id" example:"0b7b8e4e-3a5c-4f55-9d1b-5a1f5e3f7c21"`              // Optional, must be the authenticated user
	Institution string          `json:"institution" binding:"max=255" example:"First Bank"`                  // Bank or card issuer
	AccountName string          `json:"account_name" binding:"required,notblank,max=255" example:"Checking"` // Name of the account
	Last4       string          `json:"last4" binding:"omitempty,len=4,numeric" example:"4821"`              // Last four digits of the account number
	Type        string          `json:"type" binding:"max=64" example:"checking"`                            // Type of the account, e.g. checking or credit
	Balance     decimal.Decimal `json:"balance" example:"1520.35" multipleOf:"0.00000001"`                   // Current balance
	Currency    string          `json:"currency" binding:"omitempty,len=3" example:"USD" default:"USD"`      // ISO 4217 currency code
}

func (editable AccountCreate) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:      userID,
		Institution: editable.Institution,
		AccountName: editable.AccountName,
		Last4:       editable.Last4,
		Type:        editable.Type,
		Balance:     editable.Balance,
		Currency:    editable.Currency,
	}
}

// AccountEditable contains the fields that can be updated. Only fields
// present in the request body are updated.
type AccountEditable struct {
	UserID      *uuid.UUID       `json:"user_id" nullable:"true"`
	Institution *string          `json:"institution" binding:"omitnil,max=255" nullable:"true" example:"First Bank"`
	AccountName *string          `json:"account_name" binding:"omitnil,notblank,max=255" example:"Checking"`
	Last4       *string          `json:"last4" binding:"omitnil,len=4,numeric" nullable:"true" example:"4821"`
	Type        *string          `json:"type" binding:"omitnil,max=64" nullable:"true" example:"checking"`
	Balance     *decimal.Decimal `json:"balance" example:"1520.35"`
	Currency    *string          `json:"currency" binding:"omitnil,len=3" example:"USD"`
}

func (editable AccountEditable) owner() *uuid.UUID {
	return editable.UserID
}

func (editable AccountEditable) model() (models.Account, error) {
	a := models.Account{
		Institution: trimmed(editable.Institution),
		AccountName: trimmed(editable.AccountName),
		Last4:       value(editable.Last4),
		Type:        trimmed(editable.Type),
		Balance:     value(editable.Balance),
	}

	if editable.Currency != nil {
		code, err := models.ParseCurrency(*editable.Currency)
		if err != nil {
			return a, err
		}
		a.Currency = code
	}

	return a, nil
}

type AccountQueryFilter struct {
	Type        string `form:"type"`                       // Filter by type
	Institution string `form:"institution"`                // Filter by institution
	Search      string `form:"search" filterField:"false"` // Search for this text in account name and institution
	Pagination
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Type:        strings.TrimSpace(f.Type),
		Institution: strings.TrimSpace(f.Institution),
	}
}
