package models

import (
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DirectionInflow  = "inflow"
	DirectionOutflow = "outflow"
)

// Transaction is a single movement of money.
//
// The direction decides whether it counts as income or expense, the
// sign of the amount is kept as entered.
type Transaction struct {
	DefaultModel
	User            User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Account         *Account        `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	AccountID       *uuid.UUID      `json:"account_id" gorm:"type:uuid;index"`
	Category        *Category       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID      `json:"category_id" gorm:"type:uuid;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8);not null" example:"42.17"`
	Direction       string          `json:"direction" gorm:"not null" example:"outflow"`
	Description     string          `json:"description" example:"Weekly groceries"`
	TransactionDate types.Date      `json:"transaction_date" gorm:"index;not null" example:"2025-06-14"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	// Ensure that references are nil and not a pointer to a nil UUID
	if t.AccountID != nil && *t.AccountID == uuid.Nil {
		t.AccountID = nil
	}

	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx, t.UserID, t.AccountID, t.CategoryID)
}

// BeforeUpdate verifies changed references before committing an
// update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		return nil
	}

	var accountID, categoryID *uuid.UUID
	if tx.Statement.Changed("AccountID") {
		accountID = toSave.AccountID
	}

	if tx.Statement.Changed("CategoryID") {
		categoryID = toSave.CategoryID
	}

	return t.checkIntegrity(tx, t.UserID, accountID, categoryID)
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB, userID uuid.UUID, accountID, categoryID *uuid.UUID) error {
	if err := ownedAccount(tx, userID, accountID); err != nil {
		return err
	}

	return visibleCategory(tx, userID, categoryID)
}
