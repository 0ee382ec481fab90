package models_test

import (
	"os"
	"path/filepath"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDefaultCategoriesSeeded() {
	var categories []models.Category
	err := suite.db.Where("user_id IS NULL").Find(&categories).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, 11)

	for _, c := range categories {
		assert.True(suite.T(), c.IsDefault, "category %s", c.Name)
	}
}

func (suite *TestSuiteStandard) TestDefaultCategoriesSeedIsIdempotent() {
	path := test.TmpFile(suite.T())

	db, err := models.Connect(path)
	assert.Nil(suite.T(), err)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	db, err = models.Connect(path)
	assert.Nil(suite.T(), err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var count int64
	db.Model(&models.Category{}).Where("user_id IS NULL").Count(&count)
	assert.Equal(suite.T(), int64(11), count)
}

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	_, err := models.Connect("/nonexistent-directory/expenses.db")
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestOpenCreatesDataDirectory() {
	path := filepath.Join(suite.T().TempDir(), "data", "nested", "expenses.db")

	db, err := models.Open("", path)
	suite.Require().Nil(err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	assert.FileExists(suite.T(), path)

	var count int64
	db.Model(&models.Category{}).Where("user_id IS NULL").Count(&count)
	assert.Equal(suite.T(), int64(11), count)
}

func (suite *TestSuiteStandard) TestOpenInvalidDataDirectory() {
	file := test.TmpFile(suite.T())
	suite.Require().Nil(os.WriteFile(file, []byte("not a directory"), 0o600))

	_, err := models.Open("", filepath.Join(file, "expenses.db"))
	assert.ErrorContains(suite.T(), err, "failed to create data directory")
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := suite.db.First(&models.User{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)

	var dbErr models.DatabaseError
	assert.ErrorAs(suite.T(), err, &dbErr)
	assert.NotNil(suite.T(), dbErr.Cause)
}

func (suite *TestSuiteStandard) TestRecordNotFound() {
	err := suite.db.First(&models.Account{}, "id = ?", "not-there").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "there is no account matching your query")

	err = suite.db.First(&models.Category{}, "id = ?", "not-there").Error
	assert.Contains(suite.T(), err.Error(), "there is no category matching your query")
}
