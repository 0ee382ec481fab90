package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

// Category classifies transactions and budgets.
//
// Categories without a user are global defaults that every user can see.
type Category struct {
	DefaultModel
	User      *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Name      string     `json:"name" gorm:"not null" example:"Groceries"`
	Type      string     `json:"type" gorm:"not null" example:"expense"`
	Icon      string     `json:"icon" example:"cart"`
	IsDefault bool       `json:"is_default"`
}

var defaultCategories = []Category{
	{Name: "Dining", Type: CategoryTypeExpense, Icon: "utensils", IsDefault: true},
	{Name: "Entertainment", Type: CategoryTypeExpense, Icon: "film", IsDefault: true},
	{Name: "Groceries", Type: CategoryTypeExpense, Icon: "cart", IsDefault: true},
	{Name: "Health", Type: CategoryTypeExpense, Icon: "heart", IsDefault: true},
	{Name: "Rent", Type: CategoryTypeExpense, Icon: "home", IsDefault: true},
	{Name: "Shopping", Type: CategoryTypeExpense, Icon: "bag", IsDefault: true},
	{Name: "Transport", Type: CategoryTypeExpense, Icon: "car", IsDefault: true},
	{Name: "Utilities", Type: CategoryTypeExpense, Icon: "bolt", IsDefault: true},
	{Name: "Freelance", Type: CategoryTypeIncome, Icon: "briefcase", IsDefault: true},
	{Name: "Investments", Type: CategoryTypeIncome, Icon: "chart", IsDefault: true},
	{Name: "Salary", Type: CategoryTypeIncome, Icon: "wallet", IsDefault: true},
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)

	// Only the seeded categories are defaults
	if c.UserID != nil {
		c.IsDefault = false
	}

	return nil
}

// VisibleCategories scopes a query to the categories the user can use:
// their own and the global defaults.
func VisibleCategories(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(categories.user_id = ? OR categories.user_id IS NULL)", userID)
	}
}

// visibleCategory verifies that the category exists and is visible to the user.
func visibleCategory(tx *gorm.DB, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	err := tx.Scopes(VisibleCategories(userID)).First(&Category{}, "id = ?", *id).Error
	if errors.Is(err, ErrResourceNotFound) {
		return fmt.Errorf("%w: no category with ID %s", ErrReferenceNotFound, *id)
	}
	return err
}
