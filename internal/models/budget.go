package models

import (
	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for a category in a calendar month.
type Budget struct {
	DefaultModel
	User        User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;uniqueIndex:budget_period;not null"`
	Category    Category        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:uuid;uniqueIndex:budget_period;not null"`
	Month       types.Month     `json:"month" gorm:"uniqueIndex:budget_period;not null" example:"2025-06-01"`
	LimitAmount decimal.Decimal `json:"limit_amount" gorm:"type:DECIMAL(20,8);not null" example:"300"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	return visibleCategory(tx, b.UserID, &b.CategoryID)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Budget)
	if !ok || !tx.Statement.Changed("CategoryID") {
		return nil
	}

	return visibleCategory(tx, b.UserID, &toSave.CategoryID)
}
