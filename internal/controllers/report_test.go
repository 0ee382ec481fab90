package controllers_test

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) spending(query string) []models.CategorySpending {
	r := suite.request(http.MethodGet, "http://example.com/reports/spending-by-category?"+query, nil, http.StatusOK)

	var spending []models.CategorySpending
	test.DecodeResponse(suite.T(), &r, &spending)
	return spending
}

func (suite *TestSuiteStandard) TestSpendingByCategory() {
	groceries := suite.defaultCategory("Groceries")
	rent := suite.defaultCategory("Rent")

	suite.createTestTransaction(map[string]any{"category_id": groceries, "amount": 100.05, "transaction_date": "2025-03-02"})
	suite.createTestTransaction(map[string]any{"category_id": groceries, "amount": -50.05, "transaction_date": "2025-03-16"})
	suite.createTestTransaction(map[string]any{"category_id": rent, "amount": 1200, "transaction_date": "2025-03-01"})

	// Outside of the current month, inflows and uncategorized do not count
	suite.createTestTransaction(map[string]any{"category_id": rent, "amount": 1200, "transaction_date": "2025-02-01"})
	suite.createTestTransaction(map[string]any{"category_id": groceries, "amount": 30, "direction": "inflow", "transaction_date": "2025-03-03"})
	suite.createTestTransaction(map[string]any{"amount": 999, "transaction_date": "2025-03-03"})

	spending := suite.spending("")

	// All eight default expense categories are listed
	suite.Require().Len(spending, 8)
	suite.Equal("Rent", spending[0].CategoryName)
	suite.True(decimal.NewFromInt(1200).Equal(spending[0].Total))
	suite.Equal("Groceries", spending[1].CategoryName)
	suite.True(decimal.NewFromFloat(150.1).Equal(spending[1].Total), "total is %s", spending[1].Total)
	suite.Equal("USD", spending[1].Currency)

	// Categories without spending have a total of 0 and are ordered by name
	suite.Equal("Dining", spending[2].CategoryName)
	suite.True(spending[2].Total.IsZero())
	suite.Equal("Utilities", spending[7].CategoryName)

	paged := suite.spending("limit=1&offset=1")
	suite.Require().Len(paged, 1)
	suite.Equal("Groceries", paged[0].CategoryName)
}

func (suite *TestSuiteStandard) TestSpendingByCategoryWindow() {
	rent := suite.defaultCategory("Rent")

	suite.createTestTransaction(map[string]any{"category_id": rent, "amount": 1000, "transaction_date": "2025-01-01"})
	suite.createTestTransaction(map[string]any{"category_id": rent, "amount": 1100, "transaction_date": "2024-12-31"})
	suite.createTestTransaction(map[string]any{"category_id": rent, "amount": 1200, "transaction_date": "2025-03-31"})

	tests := []struct {
		query string
		total int64
	}{
		{"range=month", 1200},
		{"range=quarter", 2200},
		{"range=3months", 2200},
		{"from=2024-12-01&to=2025-01-31", 2100},
		{"from=2025-01-01", 2200},
		{"to=2025-01-01", 2100},
		{"range=month&from=2024-12-31&to=2024-12-31", 1100},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			spending := suite.spending(tt.query)
			suite.Require().NotEmpty(spending)
			suite.Equal("Rent", spending[0].CategoryName)
			suite.True(decimal.NewFromInt(tt.total).Equal(spending[0].Total), "total is %s", spending[0].Total)
		})
	}
}

func (suite *TestSuiteStandard) TestSpendingByCategoryOwnCategories() {
	pets := suite.createTestCategory(controllers.CategoryCreate{Name: "Pets"})
	suite.createTestTransaction(map[string]any{"category_id": pets.ID, "amount": 40, "transaction_date": "2025-03-05"})

	_, otherToken := suite.createUser("other@example.com")
	suite.requestAs(otherToken, http.MethodPost, "http://example.com/categories", controllers.CategoryCreate{Name: "Foreign", Type: "expense"}, http.StatusCreated)

	spending := suite.spending("")
	suite.Require().Len(spending, 9)
	suite.Equal("Pets", spending[0].CategoryName)

	for _, s := range spending {
		suite.NotEqual("Foreign", s.CategoryName)
	}
}

func (suite *TestSuiteStandard) TestReportInvalidQuery() {
	for _, path := range []string{
		"/reports/spending-by-category?range=year",
		"/reports/spending-by-category?from=2025-13-01",
		"/reports/spending-by-category?from=2025-03-31&to=2025-03-01",
		"/reports/spending-by-category?limit=0",
		"/reports/income-vs-expense?range=week",
		"/reports/income-vs-expense?to=31.03.2025",
	} {
		suite.Run(path, func() {
			suite.request(http.MethodGet, "http://example.com"+path, nil, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeVsExpense() {
	suite.createTestTransaction(map[string]any{"direction": "inflow", "amount": 1000, "transaction_date": "2025-01-05"})
	suite.createTestTransaction(map[string]any{"direction": "outflow", "amount": 250, "transaction_date": "2025-01-10"})
	suite.createTestTransaction(map[string]any{"direction": "outflow", "amount": -150, "transaction_date": "2025-01-31"})
	suite.createTestTransaction(map[string]any{"direction": "outflow", "amount": 80, "transaction_date": "2025-03-02"})

	r := suite.request(http.MethodGet, "http://example.com/reports/income-vs-expense?range=quarter", nil, http.StatusOK)

	var periods []models.IncomeExpense
	test.DecodeResponse(suite.T(), &r, &periods)

	// February has no transactions and is omitted
	suite.Require().Len(periods, 2)

	suite.Equal("2025-01", periods[0].Period)
	suite.True(decimal.NewFromInt(1000).Equal(periods[0].Income))
	suite.True(decimal.NewFromInt(400).Equal(periods[0].Expense))
	suite.True(decimal.NewFromInt(600).Equal(periods[0].Net))

	suite.Equal("2025-03", periods[1].Period)
	suite.True(decimal.NewFromInt(-80).Equal(periods[1].Net))

	r = suite.request(http.MethodGet, "http://example.com/reports/income-vs-expense", nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &periods)
	suite.Require().Len(periods, 1, "the default window is the current month")
	suite.Equal("2025-03", periods[0].Period)
}

func (suite *TestSuiteStandard) TestAlerts() {
	r := suite.request(http.MethodGet, "http://example.com/reports/alerts", nil, http.StatusOK)
	suite.JSONEq(`[]`, r.Body.String())
}
