package models_test

import (
	"testing"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionAmountKeepsSign() {
	u := suite.createTestUser(models.User{})
	t := suite.createTestTransaction(models.Transaction{
		UserID:          u.ID,
		Amount:          amount("-42.17"),
		TransactionDate: date("2025-06-14"),
		Description:     "  Groceries ",
	})

	var found models.Transaction
	err := suite.db.First(&found, "id = ?", t.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), amount("-42.17").Equal(found.Amount), "amount is %s", found.Amount)
	assert.Equal(suite.T(), "Groceries", found.Description)
	assert.Equal(suite.T(), "2025-06-14", found.TransactionDate.String())
}

func (suite *TestSuiteStandard) TestTransactionNilReferences() {
	u := suite.createTestUser(models.User{})
	t := suite.createTestTransaction(models.Transaction{
		UserID:          u.ID,
		Amount:          amount("1"),
		TransactionDate: date("2025-06-14"),
		AccountID:       &uuid.Nil,
		CategoryID:      &uuid.Nil,
	})

	assert.Nil(suite.T(), t.AccountID)
	assert.Nil(suite.T(), t.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionReferenceIntegrity() {
	u := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	foreignAccount := suite.createTestAccount(models.Account{UserID: other.ID})
	foreignCategory := suite.createTestCategory(models.Category{UserID: &other.ID, Name: "Theirs"})
	missing := uuid.New()

	tests := []struct {
		name     string
		account  *uuid.UUID
		category *uuid.UUID
	}{
		{"Account of other user", &foreignAccount.ID, nil},
		{"Category of other user", nil, &foreignCategory.ID},
		{"Missing account", &missing, nil},
		{"Missing category", nil, &missing},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := suite.db.Create(&models.Transaction{
				UserID:          u.ID,
				AccountID:       tt.account,
				CategoryID:      tt.category,
				Amount:          amount("10"),
				Direction:       models.DirectionOutflow,
				TransactionDate: date("2025-06-14"),
			}).Error
			assert.ErrorIs(t, err, models.ErrReferenceNotFound)
		})
	}

	var count int64
	suite.db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestTransactionDefaultCategoryAllowed() {
	u := suite.createTestUser(models.User{})
	groceries := suite.defaultCategory("Groceries")

	t := suite.createTestTransaction(models.Transaction{
		UserID:          u.ID,
		CategoryID:      &groceries.ID,
		Amount:          amount("10"),
		TransactionDate: date("2025-06-14"),
	})
	assert.Equal(suite.T(), groceries.ID, *t.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionUpdateReferenceIntegrity() {
	u := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	foreignCategory := suite.createTestCategory(models.Category{UserID: &other.ID, Name: "Theirs"})

	t := suite.createTestTransaction(models.Transaction{
		UserID:          u.ID,
		Amount:          amount("10"),
		TransactionDate: date("2025-06-14"),
	})

	err := suite.db.Model(&t).Select("CategoryID").Updates(models.Transaction{CategoryID: &foreignCategory.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrReferenceNotFound)

	own := suite.createTestCategory(models.Category{UserID: &u.ID, Name: "Mine"})
	err = suite.db.Model(&t).Select("CategoryID").Updates(models.Transaction{CategoryID: &own.ID}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestTransactionAccountDeleteKeepsTransaction() {
	u := suite.createTestUser(models.User{})
	a := suite.createTestAccount(models.Account{UserID: u.ID})
	t := suite.createTestTransaction(models.Transaction{
		UserID:          u.ID,
		AccountID:       &a.ID,
		Amount:          amount("10"),
		TransactionDate: date("2025-06-14"),
	})

	err := suite.db.Delete(&a).Error
	assert.Nil(suite.T(), err)

	var found models.Transaction
	err = suite.db.First(&found, "id = ?", t.ID).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), found.AccountID)
}
