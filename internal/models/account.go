package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

const DefaultCurrency = "USD"

var ErrCurrencyInvalid = errors.New("the currency must be an ISO 4217 code")

// Account represents a financial account of a user, e.g. a checking
// account or a credit card.
type Account struct {
	DefaultModel
	User        User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Institution string          `json:"institution" example:"First Bank"`
	AccountName string          `json:"account_name" example:"Everyday Checking"`
	Last4       string          `json:"last4" example:"4821"`
	Type        string          `json:"type" example:"checking"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"1520.35"`
	Currency    string          `json:"currency" example:"USD"`
}

// BeforeSave trims whitespace from all strings and normalizes
// the currency code.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Institution = strings.TrimSpace(a.Institution)
	a.AccountName = strings.TrimSpace(a.AccountName)
	a.Type = strings.TrimSpace(a.Type)

	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}

	code, err := ParseCurrency(a.Currency)
	if err != nil {
		return err
	}
	a.Currency = code

	return nil
}

// ParseCurrency validates an ISO 4217 currency code and returns it
// in its canonical upper case form.
func ParseCurrency(s string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w, got '%s'", ErrCurrencyInvalid, s)
	}

	return unit.String(), nil
}

// ownedAccount verifies that the account exists and belongs to the user.
func ownedAccount(tx *gorm.DB, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	err := tx.Where("user_id = ?", userID).First(&Account{}, "id = ?", *id).Error
	if errors.Is(err, ErrResourceNotFound) {
		return fmt.Errorf("%w: no account with ID %s", ErrReferenceNotFound, *id)
	}
	return err
}
