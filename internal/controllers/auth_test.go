package controllers_test

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
)

func (suite *TestSuiteStandard) TestRegister() {
	r := suite.requestAs("", http.MethodPost, "http://example.com/auth/register", map[string]any{
		"email":    "John@Example.com",
		"password": "hunter2hunter2",
		"name":     "John",
	}, http.StatusCreated)

	suite.NotContains(r.Body.String(), "password")
	suite.NotContains(r.Body.String(), "hunter2")

	var response controllers.RegisterResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Equal("john@example.com", response.User.Email)
	suite.Equal("John", response.User.Name)
	suite.NotEmpty(response.User.ID)

	var stored models.User
	suite.Require().Nil(suite.co.DB.First(&stored, "id = ?", response.User.ID).Error)
	suite.NotEqual("hunter2hunter2", stored.PasswordHash)
	suite.True(strings.HasPrefix(stored.PasswordHash, "$2"))
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	r := suite.requestAs("", http.MethodPost, "http://example.com/auth/register", controllers.RegisterRequest{
		Email:    "JANE@example.com",
		Password: "another password",
		Name:     "Other Jane",
	}, http.StatusConflict)

	suite.Contains(suite.decodeError(&r).Error, "email already in use")
	suite.Equal(int64(1), suite.count(&models.User{}))
}

func (suite *TestSuiteStandard) TestRegisterValidation() {
	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"Malformed email", controllers.RegisterRequest{Email: "not-an-email", Password: "long enough", Name: "X"}, "email"},
		{"Short password", controllers.RegisterRequest{Email: "x@example.com", Password: "short", Name: "X"}, "password"},
		{"Missing name", controllers.RegisterRequest{Email: "x@example.com", Password: "long enough"}, "name"},
		{"Blank name", controllers.RegisterRequest{Email: "x@example.com", Password: "long enough", Name: "   "}, "name"},
		{"Tab name", map[string]any{"email": "x@example.com", "password": "long enough", "name": "\t\n"}, "name"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.requestAs("", http.MethodPost, "http://example.com/auth/register", tt.body, http.StatusBadRequest)

			e := suite.decodeError(&r)
			suite.Equal("invalid input", e.Error)
			suite.Contains(e.Detail, tt.field)
		})
	}

	suite.Equal(int64(1), suite.count(&models.User{}))
}

func (suite *TestSuiteStandard) TestLogin() {
	r := suite.requestAs("", http.MethodPost, "http://example.com/auth/login", controllers.LoginRequest{
		Email:    "Jane@Example.com",
		Password: "correct horse battery staple",
	}, http.StatusOK)

	var response controllers.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.NotEmpty(response.Token)
	suite.Equal(suite.user.ID, response.User.ID)

	// The token authenticates requests
	suite.requestAs(response.Token, http.MethodGet, "http://example.com/profile", nil, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"Wrong password", "jane@example.com", "wrong password"},
		{"Unknown email", "nobody@example.com", "correct horse battery staple"},
	}

	var messages []string
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.requestAs("", http.MethodPost, "http://example.com/auth/login", controllers.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}, http.StatusUnauthorized)

			messages = append(messages, suite.decodeError(&r).Error)
		})
	}

	// Both failures must be indistinguishable
	suite.Require().Len(messages, 2)
	suite.Equal(messages[0], messages[1])
}

func (suite *TestSuiteStandard) TestUnauthorized() {
	tests := []struct {
		name   string
		header string
	}{
		{"No header", ""},
		{"Wrong scheme", "Basic amFuZTpwYXNzd29yZA=="},
		{"Garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			r := test.Request(suite.T(), suite.co, http.MethodGet, "http://example.com/accounts", nil, headers)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
			suite.JSONEq(`{"error":"Unauthorized"}`, r.Body.String())
		})
	}
}

func (suite *TestSuiteStandard) TestDatabaseError() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "http://example.com/accounts", nil, http.StatusInternalServerError)
	suite.Contains(r.Body.String(), models.ErrGeneral.Error())
}
