package controllers_test

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
)

func (suite *TestSuiteStandard) TestProfile() {
	r := suite.request(http.MethodGet, "http://example.com/profile", nil, http.StatusOK)

	var user models.User
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Equal(suite.user.ID, user.ID)
	suite.Equal("jane@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestProfileOptions() {
	r := suite.request(http.MethodOptions, "http://example.com/profile", nil, http.StatusNoContent)
	suite.Equal("OPTIONS, GET, PUT", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestUpdateProfile() {
	r := suite.request(http.MethodPut, "http://example.com/profile", map[string]any{
		"name":                    " Jane Smith ",
		"notificationPreferences": map[string]any{"budgetAlerts": true},
	}, http.StatusOK)

	var user models.User
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Equal("Jane Smith", user.Name)
	suite.Equal(true, user.NotificationPreferences["budgetAlerts"])

	// Preferences are kept when not sent
	r = suite.request(http.MethodPut, "http://example.com/profile", map[string]any{"name": "Jane"}, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Equal("Jane", user.Name)
	suite.Equal(true, user.NotificationPreferences["budgetAlerts"])
}

func (suite *TestSuiteStandard) TestUpdateProfileValidation() {
	r := suite.request(http.MethodPut, "http://example.com/profile", map[string]any{"notificationPreferences": map[string]any{}}, http.StatusBadRequest)
	suite.Contains(suite.decodeError(&r).Detail, "name")

	suite.request(http.MethodPut, "http://example.com/profile", map[string]any{"name": "Jane", "email": "new@example.com"}, http.StatusBadRequest)

	r = suite.request(http.MethodPut, "http://example.com/profile", map[string]any{"name": "   "}, http.StatusBadRequest)
	suite.Equal("name must not be blank", suite.decodeError(&r).Detail["name"])

	r = suite.request(http.MethodGet, "http://example.com/profile", nil, http.StatusOK)
	var user models.User
	test.DecodeResponse(suite.T(), &r, &user)
	suite.NotEmpty(user.Name)
}
