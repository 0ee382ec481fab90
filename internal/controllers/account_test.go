package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// createTestAccount creates an account for the suite's user via the API.
func (suite *TestSuiteStandard) createTestAccount(account controllers.AccountCreate) models.Account {
	if account.AccountName == "" {
		account.AccountName = "Checking"
	}

	r := suite.request(http.MethodPost, "http://example.com/accounts", account, http.StatusCreated)

	var a models.Account
	test.DecodeResponse(suite.T(), &r, &a)
	return a
}

func (suite *TestSuiteStandard) TestCreateAccount() {
	account := suite.createTestAccount(controllers.AccountCreate{
		Institution: " First Bank ",
		AccountName: "Everyday",
		Last4:       "4821",
		Type:        "checking",
		Balance:     decimal.NewFromFloat(1520.35),
		Currency:    "eur",
	})

	suite.NotEqual(uuid.Nil, account.ID)
	suite.Equal(suite.user.ID, account.UserID)
	suite.Equal("First Bank", account.Institution)
	suite.Equal("EUR", account.Currency)
	suite.True(decimal.NewFromFloat(1520.35).Equal(account.Balance))

	// Currency defaults to USD
	suite.Equal("USD", suite.createTestAccount(controllers.AccountCreate{}).Currency)
}

func (suite *TestSuiteStandard) TestCreateAccountFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"No name", map[string]any{"institution": "First Bank"}, http.StatusBadRequest},
		{"Blank name", map[string]any{"account_name": "  "}, http.StatusBadRequest},
		{"Last4 too short", map[string]any{"account_name": "A", "last4": "12"}, http.StatusBadRequest},
		{"Last4 not numeric", map[string]any{"account_name": "A", "last4": "12ab"}, http.StatusBadRequest},
		{"Unknown currency", map[string]any{"account_name": "A", "currency": "XYZ"}, http.StatusBadRequest},
		{"Foreign user", map[string]any{"account_name": "A", "user_id": uuid.New()}, http.StatusBadRequest},
		{"Broken JSON", `{"account_name": `, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.request(http.MethodPost, "http://example.com/accounts", tt.body, tt.status)
		})
	}

	suite.Equal(int64(0), suite.count(&models.Account{}))
}

func (suite *TestSuiteStandard) TestGetAccounts() {
	suite.createTestAccount(controllers.AccountCreate{AccountName: "Savings", Institution: "Second Bank", Type: "savings"})
	suite.createTestAccount(controllers.AccountCreate{AccountName: "Credit Card", Institution: "First Bank", Type: "credit"})
	suite.createTestAccount(controllers.AccountCreate{AccountName: "Checking", Institution: "First Bank", Type: "checking"})

	// Another user's accounts are never listed
	_, otherToken := suite.createUser("other@example.com")
	suite.requestAs(otherToken, http.MethodPost, "http://example.com/accounts", controllers.AccountCreate{AccountName: "Foreign"}, http.StatusCreated)

	tests := []struct {
		query string
		names []string
	}{
		{"", []string{"Checking", "Credit Card", "Savings"}},
		{"institution=First%20Bank", []string{"Checking", "Credit Card"}},
		{"type=savings", []string{"Savings"}},
		{"search=Card", []string{"Credit Card"}},
		{"search=Second", []string{"Savings"}},
		{"limit=1", []string{"Checking"}},
		{"limit=2&offset=2", []string{"Savings"}},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/accounts?%s", tt.query), nil, http.StatusOK)

			var accounts []models.Account
			test.DecodeResponse(suite.T(), &r, &accounts)

			names := make([]string, 0, len(accounts))
			for _, a := range accounts {
				names = append(names, a.AccountName)
			}
			suite.Equal(tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestGetAccountsPagination() {
	tests := []struct {
		query  string
		status int
	}{
		{"limit=0", http.StatusBadRequest},
		{"limit=-1", http.StatusBadRequest},
		{"limit=abc", http.StatusBadRequest},
		{"offset=-5", http.StatusBadRequest},
		{"limit=1000", http.StatusOK},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			suite.request(http.MethodGet, "http://example.com/accounts?"+tt.query, nil, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetAccount() {
	account := suite.createTestAccount(controllers.AccountCreate{AccountName: "Checking"})

	r := suite.request(http.MethodGet, "http://example.com/accounts/"+account.ID.String(), nil, http.StatusOK)

	var a models.Account
	test.DecodeResponse(suite.T(), &r, &a)
	suite.Equal(account.ID, a.ID)

	suite.request(http.MethodGet, "http://example.com/accounts/"+uuid.NewString(), nil, http.StatusNotFound)
	suite.request(http.MethodGet, "http://example.com/accounts/not-a-uuid", nil, http.StatusBadRequest)

	// Other users cannot see the account
	_, otherToken := suite.createUser("other@example.com")
	suite.requestAs(otherToken, http.MethodGet, "http://example.com/accounts/"+account.ID.String(), nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountOptions() {
	account := suite.createTestAccount(controllers.AccountCreate{})

	r := suite.request(http.MethodOptions, "http://example.com/accounts/"+account.ID.String(), nil, http.StatusNoContent)
	suite.Equal("OPTIONS, GET, PUT, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "http://example.com/accounts", nil, http.StatusNoContent)
	suite.Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	suite.request(http.MethodOptions, "http://example.com/accounts/"+uuid.NewString(), nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	account := suite.createTestAccount(controllers.AccountCreate{AccountName: "Checking", Institution: "First Bank", Last4: "1234"})

	r := suite.request(http.MethodPatch, "http://example.com/accounts/"+account.ID.String(), map[string]any{
		"account_name": " Main ",
		"last4":        nil,
		"currency":     "gbp",
	}, http.StatusOK)

	var a models.Account
	test.DecodeResponse(suite.T(), &r, &a)
	suite.Equal("Main", a.AccountName)
	suite.Equal("", a.Last4)
	suite.Equal("GBP", a.Currency)
	suite.Equal("First Bank", a.Institution, "fields not in the body must not change")

	// The own user ID can be sent, it is never changed
	suite.request(http.MethodPut, "http://example.com/accounts/"+account.ID.String(), map[string]any{
		"user_id": suite.user.ID,
		"type":    "checking",
	}, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUpdateAccountFails() {
	account := suite.createTestAccount(controllers.AccountCreate{})

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"Empty object", map[string]any{}, http.StatusBadRequest, "no fields to update"},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Unknown field", map[string]any{"id": uuid.New()}, http.StatusBadRequest, "id"},
		{"Only user ID", map[string]any{"user_id": suite.user.ID}, http.StatusBadRequest, "no fields to update"},
		{"Foreign user", map[string]any{"user_id": uuid.New(), "type": "x"}, http.StatusBadRequest, "user_id"},
		{"Null name", map[string]any{"account_name": nil}, http.StatusBadRequest, "invalid input"},
		{"Invalid last4", map[string]any{"last4": "abcd"}, http.StatusBadRequest, "invalid input"},
		{"Invalid currency", map[string]any{"currency": "ABC"}, http.StatusBadRequest, "ISO 4217"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPatch, "http://example.com/accounts/"+account.ID.String(), tt.body, tt.status)
			suite.Contains(suite.decodeError(&r).Error, tt.message)
		})
	}

	suite.request(http.MethodPatch, "http://example.com/accounts/"+uuid.NewString(), map[string]any{"type": "x"}, http.StatusNotFound)
	suite.request(http.MethodPatch, "http://example.com/accounts/not-a-uuid", map[string]any{"type": "x"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	account := suite.createTestAccount(controllers.AccountCreate{})
	path := "http://example.com/accounts/" + account.ID.String()

	for _, expected := range []int64{1, 0} {
		r := suite.request(http.MethodDelete, path, nil, http.StatusOK)

		var response deleteResponse
		test.DecodeResponse(suite.T(), &r, &response)
		suite.Equal(expected, response.Deleted)
	}

	suite.request(http.MethodDelete, "http://example.com/accounts/not-a-uuid", nil, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteAccountOfOtherUser() {
	account := suite.createTestAccount(controllers.AccountCreate{})

	_, otherToken := suite.createUser("other@example.com")
	r := suite.requestAs(otherToken, http.MethodDelete, "http://example.com/accounts/"+account.ID.String(), nil, http.StatusOK)

	var response deleteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Equal(int64(0), response.Deleted)
	suite.Equal(int64(1), suite.count(&models.Account{}))
}
