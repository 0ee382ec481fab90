package models

import (
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target.
type Goal struct {
	DefaultModel
	User          User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Name          string          `json:"name" gorm:"not null" example:"Emergency fund"`
	TargetAmount  decimal.Decimal `json:"target_amount" gorm:"type:DECIMAL(20,8);not null" example:"5000"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:DECIMAL(20,8);not null" example:"1250"`
	TargetDate    *types.Date     `json:"target_date" example:"2025-12-31"`
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	return nil
}
