package controllers_test

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// budgetResponse mirrors the JSON of a budget with its spent amount.
type budgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Month       string          `json:"month"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Spent       decimal.Decimal `json:"spent"`
	Overrun     bool            `json:"overrun"`
}

func (suite *TestSuiteStandard) createTestBudget(body map[string]any, expectedStatus ...int) budgetResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = []int{http.StatusCreated}
	}

	r := suite.request(http.MethodPost, "http://example.com/budgets", body, expectedStatus...)

	var b budgetResponse
	if r.Code == http.StatusCreated {
		test.DecodeResponse(suite.T(), &r, &b)
	}
	return b
}

func (suite *TestSuiteStandard) TestCreateBudgetConflict() {
	groceries := suite.defaultCategory("Groceries")
	body := map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": 300}

	budget := suite.createTestBudget(body)
	suite.Equal(suite.user.ID, budget.UserID)
	suite.True(decimal.NewFromInt(300).Equal(budget.LimitAmount))

	r := suite.request(http.MethodPost, "http://example.com/budgets", body, http.StatusConflict)
	suite.Contains(suite.decodeError(&r).Error, "budget already exists")

	// A day in the same month is the same budget period
	body["month"] = "2025-03-17"
	suite.request(http.MethodPost, "http://example.com/budgets", body, http.StatusConflict)

	suite.Equal(int64(1), suite.count(&models.Budget{}))
}

func (suite *TestSuiteStandard) TestBudgetMonthNormalization() {
	for i, month := range []string{"2025-03", "2025-04-17"} {
		budget := suite.createTestBudget(map[string]any{
			"category_id":  suite.defaultCategory([]string{"Rent", "Health"}[i]),
			"month":        month,
			"limit_amount": 100,
		})
		suite.Equal([]string{"2025-03-01", "2025-04-01"}[i], budget.Month)
	}

	// Filtering normalizes the same way
	for _, month := range []string{"2025-03", "2025-03-17"} {
		r := suite.request(http.MethodGet, "http://example.com/budgets?month="+month, nil, http.StatusOK)

		var budgets []budgetResponse
		test.DecodeResponse(suite.T(), &r, &budgets)
		suite.Require().Len(budgets, 1)
		suite.Equal("2025-03-01", budgets[0].Month)
	}
}

func (suite *TestSuiteStandard) TestCreateBudgetFails() {
	groceries := suite.defaultCategory("Groceries")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"Missing category", map[string]any{"month": "2025-03", "limit_amount": 100}, "category_id"},
		{"Malformed category", map[string]any{"category_id": "groceries", "month": "2025-03", "limit_amount": 100}, "category_id"},
		{"Unknown category", map[string]any{"category_id": uuid.New(), "month": "2025-03", "limit_amount": 100}, ""},
		{"Missing month", map[string]any{"category_id": groceries, "limit_amount": 100}, "month"},
		{"Malformed month", map[string]any{"category_id": groceries, "month": "March", "limit_amount": 100}, "month"},
		{"Invalid month", map[string]any{"category_id": groceries, "month": "2025-13", "limit_amount": 100}, "month"},
		{"Zero limit", map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": 0}, "limit_amount"},
		{"Negative limit", map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": -5}, "limit_amount"},
		{"Limit as text", map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": "a lot"}, "limit_amount"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/budgets", tt.body, http.StatusBadRequest)

			if tt.field != "" {
				suite.Contains(suite.decodeError(&r).Detail, tt.field)
			}
		})
	}

	suite.Equal(int64(0), suite.count(&models.Budget{}))
}

func (suite *TestSuiteStandard) TestBudgetOverrun() {
	groceries := suite.defaultCategory("Groceries")
	account := suite.createTestAccount(controllers.AccountCreate{})

	budget := suite.createTestBudget(map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": 300})
	suite.True(budget.Spent.IsZero())
	suite.False(budget.Overrun)

	for _, tx := range []map[string]any{
		{"category_id": groceries, "amount": 200, "transaction_date": "2025-03-02", "account_id": account.ID},
		{"category_id": groceries, "amount": -150, "transaction_date": "2025-03-31"},
		// Not counted: inflow, other month, other category
		{"category_id": groceries, "amount": 75, "direction": "inflow", "transaction_date": "2025-03-05"},
		{"category_id": groceries, "amount": 80, "transaction_date": "2025-04-01"},
		{"category_id": suite.defaultCategory("Dining"), "amount": 20, "transaction_date": "2025-03-05"},
	} {
		suite.createTestTransaction(tx)
	}

	r := suite.request(http.MethodGet, "http://example.com/budgets/"+budget.ID.String(), nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &budget)
	suite.True(decimal.NewFromInt(350).Equal(budget.Spent), "spent is %s", budget.Spent)
	suite.True(budget.Overrun)

	r = suite.request(http.MethodGet, "http://example.com/budgets", nil, http.StatusOK)
	var budgets []budgetResponse
	test.DecodeResponse(suite.T(), &r, &budgets)
	suite.Require().Len(budgets, 1)
	suite.True(decimal.NewFromInt(350).Equal(budgets[0].Spent))
	suite.True(budgets[0].Overrun)

	// Raising the limit ends the overrun
	r = suite.request(http.MethodPatch, "http://example.com/budgets/"+budget.ID.String(), map[string]any{"limit_amount": 400}, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &budget)
	suite.True(decimal.NewFromInt(350).Equal(budget.Spent))
	suite.False(budget.Overrun)
}

func (suite *TestSuiteStandard) TestGetBudgets() {
	rent := suite.defaultCategory("Rent")
	groceries := suite.defaultCategory("Groceries")

	march := suite.createTestBudget(map[string]any{"category_id": rent, "month": "2025-03", "limit_amount": 1200})
	april := suite.createTestBudget(map[string]any{"category_id": rent, "month": "2025-04", "limit_amount": 1200})
	food := suite.createTestBudget(map[string]any{"category_id": groceries, "month": "2025-03", "limit_amount": 300})

	tests := []struct {
		query string
		ids   []uuid.UUID
	}{
		{"", []uuid.UUID{april.ID, food.ID, march.ID}},
		{"category=" + rent.String(), []uuid.UUID{april.ID, march.ID}},
		{"month=2025-03&category=" + groceries.String(), []uuid.UUID{food.ID}},
		{"limit=1", []uuid.UUID{april.ID}},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := suite.request(http.MethodGet, "http://example.com/budgets?"+tt.query, nil, http.StatusOK)

			var budgets []budgetResponse
			test.DecodeResponse(suite.T(), &r, &budgets)

			ids := make([]uuid.UUID, 0, len(budgets))
			for _, b := range budgets {
				ids = append(ids, b.ID)
			}
			suite.Equal(tt.ids, ids)
		})
	}

	suite.request(http.MethodGet, "http://example.com/budgets?month=March", nil, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	rent := suite.defaultCategory("Rent")
	march := suite.createTestBudget(map[string]any{"category_id": rent, "month": "2025-03", "limit_amount": 1200})
	april := suite.createTestBudget(map[string]any{"category_id": rent, "month": "2025-04", "limit_amount": 1200})

	r := suite.request(http.MethodPut, "http://example.com/budgets/"+april.ID.String(), map[string]any{"month": "2025-05-20"}, http.StatusOK)
	var updated budgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Equal("2025-05-01", updated.Month)

	// Moving onto an existing budget period conflicts
	suite.request(http.MethodPut, "http://example.com/budgets/"+april.ID.String(), map[string]any{"month": "2025-03"}, http.StatusConflict)

	suite.request(http.MethodPut, "http://example.com/budgets/"+march.ID.String(), map[string]any{"category_id": uuid.New()}, http.StatusBadRequest)
	suite.request(http.MethodPut, "http://example.com/budgets/"+march.ID.String(), map[string]any{"limit_amount": 0}, http.StatusBadRequest)
	suite.request(http.MethodPut, "http://example.com/budgets/"+march.ID.String(), map[string]any{"month": nil}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	budget := suite.createTestBudget(map[string]any{"category_id": suite.defaultCategory("Rent"), "month": "2025-03", "limit_amount": 1})

	for _, expected := range []int64{1, 0} {
		r := suite.request(http.MethodDelete, "http://example.com/budgets/"+budget.ID.String(), nil, http.StatusOK)

		var response deleteResponse
		test.DecodeResponse(suite.T(), &r, &response)
		suite.Equal(expected, response.Deleted)
	}
}
