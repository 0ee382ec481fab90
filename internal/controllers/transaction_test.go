package controllers_test

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultCategory returns the ID of a seeded global category.
func (suite *TestSuiteStandard) defaultCategory(name string) uuid.UUID {
	var category models.Category
	err := suite.co.DB.First(&category, "name = ? AND user_id IS NULL", name).Error
	suite.Require().Nil(err, "default category %s not found", name)
	return category.ID
}

// createTestTransaction creates a transaction via the API from a JSON body.
// Amount, direction and date default to an outflow of 10 on 2025-03-10.
func (suite *TestSuiteStandard) createTestTransaction(body map[string]any) models.Transaction {
	defaults := map[string]any{
		"amount":           10,
		"direction":        "outflow",
		"transaction_date": "2025-03-10",
	}
	for k, v := range defaults {
		if _, ok := body[k]; !ok {
			body[k] = v
		}
	}

	r := suite.request(http.MethodPost, "http://example.com/transactions", body, http.StatusCreated)

	var t models.Transaction
	test.DecodeResponse(suite.T(), &r, &t)
	return t
}

func (suite *TestSuiteStandard) TestCreateTransactionEcho() {
	account := suite.createTestAccount(controllers.AccountCreate{})
	groceries := suite.defaultCategory("Groceries")

	r := suite.request(http.MethodPost, "http://example.com/transactions", map[string]any{
		"account_id":       account.ID,
		"category_id":      groceries,
		"amount":           -42.17,
		"direction":        "outflow",
		"description":      "Weekly groceries",
		"transaction_date": "2025-06-14",
	}, http.StatusCreated)

	var response map[string]any
	test.DecodeResponse(suite.T(), &r, &response)

	suite.NotEmpty(response["id"])
	suite.Equal(suite.user.ID.String(), response["user_id"])
	suite.Equal(account.ID.String(), response["account_id"])
	suite.Equal(groceries.String(), response["category_id"])
	suite.Equal(-42.17, response["amount"], "the amount must be stored with its sign")
	suite.Equal("outflow", response["direction"])
	suite.Equal("Weekly groceries", response["description"])
	suite.Equal("2025-06-14", response["transaction_date"])

	// The echo matches what is stored
	id := response["id"].(string)
	r = suite.request(http.MethodGet, "http://example.com/transactions/"+id, nil, http.StatusOK)

	var stored models.Transaction
	test.DecodeResponse(suite.T(), &r, &stored)
	suite.True(decimal.NewFromFloat(-42.17).Equal(stored.Amount))
	suite.Equal("2025-06-14", stored.TransactionDate.String())
}

func (suite *TestSuiteStandard) TestCreateTransactionFails() {
	_, otherToken := suite.createUser("other@example.com")
	rr := suite.requestAs(otherToken, http.MethodPost, "http://example.com/accounts", controllers.AccountCreate{AccountName: "Foreign"}, http.StatusCreated)
	var foreignAccount models.Account
	test.DecodeResponse(suite.T(), &rr, &foreignAccount)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"Zero amount", map[string]any{"amount": 0, "direction": "outflow", "transaction_date": "2025-03-01"}, "amount"},
		{"Missing amount", map[string]any{"direction": "outflow", "transaction_date": "2025-03-01"}, "amount"},
		{"Amount as text", map[string]any{"amount": "ten", "direction": "outflow", "transaction_date": "2025-03-01"}, "amount"},
		{"Invalid direction", map[string]any{"amount": 5, "direction": "sideways", "transaction_date": "2025-03-01"}, "direction"},
		{"Missing date", map[string]any{"amount": 5, "direction": "inflow"}, "transaction_date"},
		{"Malformed date", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "03/01/2025"}, "transaction_date"},
		{"Impossible date", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-02-30"}, "transaction_date"},
		{"Description too long", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-03-01", "description": strings.Repeat("x", 2001)}, "description"},
		{"Unknown account", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-03-01", "account_id": uuid.New()}, ""},
		{"Foreign account", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-03-01", "account_id": foreignAccount.ID}, ""},
		{"Unknown category", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-03-01", "category_id": uuid.New()}, ""},
		{"Foreign user", map[string]any{"amount": 5, "direction": "inflow", "transaction_date": "2025-03-01", "user_id": uuid.New()}, ""},
		{"Not an object", `[1, 2]`, ""},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/transactions", tt.body, http.StatusBadRequest)

			if tt.field != "" {
				suite.Contains(suite.decodeError(&r).Detail, tt.field)
			}
		})
	}

	suite.Equal(int64(0), suite.count(&models.Transaction{}), "invalid transactions must not be persisted")
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	account := suite.createTestAccount(controllers.AccountCreate{})
	groceries := suite.defaultCategory("Groceries")

	march := suite.createTestTransaction(map[string]any{"transaction_date": "2025-03-10", "category_id": groceries})
	salary := suite.createTestTransaction(map[string]any{"transaction_date": "2025-03-01", "direction": "inflow", "amount": 1000, "account_id": account.ID})
	april := suite.createTestTransaction(map[string]any{"transaction_date": "2025-04-02", "account_id": account.ID})
	february := suite.createTestTransaction(map[string]any{"transaction_date": "2025-02-28"})

	_, otherToken := suite.createUser("other@example.com")
	suite.requestAs(otherToken, http.MethodPost, "http://example.com/transactions", map[string]any{
		"amount": 99, "direction": "outflow", "transaction_date": "2025-03-05",
	}, http.StatusCreated)

	tests := []struct {
		name  string
		query string
		ids   []uuid.UUID
	}{
		{"All, newest first", "", []uuid.UUID{april.ID, march.ID, salary.ID, february.ID}},
		{"From", "from=2025-03-01", []uuid.UUID{april.ID, march.ID, salary.ID}},
		{"To", "to=2025-03-01", []uuid.UUID{salary.ID, february.ID}},
		{"Inclusive window", "from=2025-03-01&to=2025-03-31", []uuid.UUID{march.ID, salary.ID}},
		{"Account", "accountId=" + account.ID.String(), []uuid.UUID{april.ID, salary.ID}},
		{"Category", "category=" + groceries.String(), []uuid.UUID{march.ID}},
		{"Direction", "direction=inflow", []uuid.UUID{salary.ID}},
		{"Limit and offset", "limit=2&offset=1", []uuid.UUID{march.ID, salary.ID}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "http://example.com/transactions?"+tt.query, nil, http.StatusOK)

			var transactions []models.Transaction
			test.DecodeResponse(suite.T(), &r, &transactions)

			ids := make([]uuid.UUID, 0, len(transactions))
			for _, t := range transactions {
				ids = append(ids, t.ID)
			}
			suite.Equal(tt.ids, ids)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidQuery() {
	for _, query := range []string{
		"from=2025-3-1",
		"to=yesterday",
		"accountId=not-a-uuid",
		"direction=sideways",
		"limit=abc",
		"offset=-1",
	} {
		suite.Run(query, func() {
			suite.request(http.MethodGet, "http://example.com/transactions?"+query, nil, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	account := suite.createTestAccount(controllers.AccountCreate{})
	transaction := suite.createTestTransaction(map[string]any{"account_id": account.ID, "description": "Coffee"})
	path := "http://example.com/transactions/" + transaction.ID.String()

	r := suite.request(http.MethodPatch, path, map[string]any{
		"amount":      12.5,
		"account_id":  nil,
		"category_id": suite.defaultCategory("Dining"),
	}, http.StatusOK)

	var updated models.Transaction
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.True(decimal.NewFromFloat(12.5).Equal(updated.Amount))
	suite.Nil(updated.AccountID)
	suite.NotNil(updated.CategoryID)
	suite.Equal("Coffee", updated.Description)
	suite.Equal("outflow", updated.Direction)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Zero amount", map[string]any{"amount": 0}, http.StatusBadRequest},
		{"Null amount", map[string]any{"amount": nil}, http.StatusBadRequest},
		{"Null date", map[string]any{"transaction_date": nil}, http.StatusBadRequest},
		{"Unknown category", map[string]any{"category_id": uuid.New()}, http.StatusBadRequest},
		{"Unknown field", map[string]any{"created_at": "2025-01-01T00:00:00Z"}, http.StatusBadRequest},
		{"Empty", map[string]any{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.request(http.MethodPut, path, tt.body, tt.status)
		})
	}

	suite.request(http.MethodPut, "http://example.com/transactions/"+uuid.NewString(), map[string]any{"amount": 1}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	transaction := suite.createTestTransaction(map[string]any{})

	r := suite.request(http.MethodDelete, "http://example.com/transactions/"+transaction.ID.String(), nil, http.StatusOK)
	var response deleteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Equal(int64(1), response.Deleted)

	r = suite.request(http.MethodDelete, "http://example.com/transactions/"+uuid.NewString(), nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Equal(int64(0), response.Deleted)

	suite.request(http.MethodGet, "http://example.com/transactions/"+transaction.ID.String(), nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionSummary() {
	suite.createTestTransaction(map[string]any{"transaction_date": "2025-03-03", "direction": "inflow", "amount": 1000})
	suite.createTestTransaction(map[string]any{"transaction_date": "2025-03-09", "amount": -40})
	suite.createTestTransaction(map[string]any{"transaction_date": "2025-02-14", "amount": 60})
	suite.createTestTransaction(map[string]any{"transaction_date": "2024-12-31", "amount": 5})

	tests := []struct {
		query   string
		periods []string
	}{
		{"", []string{"2025-03", "2025-02", "2024-12"}},
		{"range=month", []string{"2025-03", "2025-02", "2024-12"}},
		{"range=year", []string{"2025", "2024"}},
		{"range=week", []string{"2025-03-03", "2025-02-10", "2024-12-30"}},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := suite.request(http.MethodGet, "http://example.com/transactions/summary?"+tt.query, nil, http.StatusOK)

			var summary []models.PeriodSummary
			test.DecodeResponse(suite.T(), &r, &summary)

			periods := make([]string, 0, len(summary))
			for _, s := range summary {
				periods = append(periods, s.Period)
			}
			suite.Equal(tt.periods, periods)
		})
	}

	r := suite.request(http.MethodGet, "http://example.com/transactions/summary?range=month", nil, http.StatusOK)
	var summary []models.PeriodSummary
	test.DecodeResponse(suite.T(), &r, &summary)
	suite.True(decimal.NewFromInt(1000).Equal(summary[0].Income))
	suite.True(decimal.NewFromInt(40).Equal(summary[0].Expense))

	suite.request(http.MethodGet, "http://example.com/transactions/summary?range=decade", nil, http.StatusBadRequest)
}
