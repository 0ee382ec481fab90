package models

import (
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	"gorm.io/gorm"
)

// User is an account holder. All other resources belong to a user.
type User struct {
	DefaultModel
	Email                   string        `json:"email" gorm:"uniqueIndex:user_email;not null" example:"jane@example.com"`
	PasswordHash            string        `json:"-" gorm:"not null"`
	Name                    string        `json:"name" gorm:"not null" example:"Jane Doe"`
	NotificationPreferences types.JSONMap `json:"notification_preferences"`
}

// NormalizeEmail returns the canonical form an email is stored in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)

	if u.NotificationPreferences == nil {
		u.NotificationPreferences = types.JSONMap{}
	}

	return nil
}
