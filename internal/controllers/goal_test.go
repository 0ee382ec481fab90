package controllers_test

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestGoal(body map[string]any) models.Goal {
	r := suite.request(http.MethodPost, "http://example.com/goals", body, http.StatusCreated)

	var g models.Goal
	test.DecodeResponse(suite.T(), &r, &g)
	return g
}

func (suite *TestSuiteStandard) TestCreateGoal() {
	goal := suite.createTestGoal(map[string]any{
		"name":          "Emergency fund",
		"target_amount": 5000,
		"target_date":   "2025-12-31",
	})

	suite.Equal("Emergency fund", goal.Name)
	suite.True(decimal.NewFromInt(5000).Equal(goal.TargetAmount))
	suite.True(goal.CurrentAmount.IsZero(), "current amount defaults to 0")
	suite.Require().NotNil(goal.TargetDate)
	suite.Equal("2025-12-31", goal.TargetDate.String())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"Missing name", map[string]any{"target_amount": 10}},
		{"Blank name", map[string]any{"name": "   ", "target_amount": 10}},
		{"Target as text", map[string]any{"name": "Car", "target_amount": "lots"}},
		{"Name too long", map[string]any{"name": strings.Repeat("x", 161), "target_amount": 10}},
		{"Zero target", map[string]any{"name": "Car", "target_amount": 0}},
		{"Negative current", map[string]any{"name": "Car", "target_amount": 10, "current_amount": -1}},
		{"Malformed date", map[string]any{"name": "Car", "target_amount": 10, "target_date": "next year"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.request(http.MethodPost, "http://example.com/goals", tt.body, http.StatusBadRequest)
		})
	}

	suite.Equal(int64(1), suite.count(&models.Goal{}))
}

func (suite *TestSuiteStandard) TestGetGoals() {
	first := suite.createTestGoal(map[string]any{"name": "Car", "target_amount": 10000})
	second := suite.createTestGoal(map[string]any{"name": "Vacation", "target_amount": 2000})

	r := suite.request(http.MethodGet, "http://example.com/goals", nil, http.StatusOK)

	var goals []models.Goal
	test.DecodeResponse(suite.T(), &r, &goals)
	suite.Require().Len(goals, 2)
	suite.Equal(second.ID, goals[0].ID, "newest goal first")
	suite.Equal(first.ID, goals[1].ID)

	r = suite.request(http.MethodGet, "http://example.com/goals?offset=1", nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &goals)
	suite.Require().Len(goals, 1)
	suite.Equal(first.ID, goals[0].ID)
}

func (suite *TestSuiteStandard) TestUpdateGoal() {
	goal := suite.createTestGoal(map[string]any{"name": "Car", "target_amount": 10000, "target_date": "2026-06-30"})
	path := "http://example.com/goals/" + goal.ID.String()

	r := suite.request(http.MethodPatch, path, map[string]any{"current_amount": 2500.5, "target_date": nil}, http.StatusOK)

	var updated models.Goal
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.True(decimal.NewFromFloat(2500.5).Equal(updated.CurrentAmount))
	suite.Nil(updated.TargetDate)
	suite.Equal("Car", updated.Name)

	suite.request(http.MethodPatch, path, map[string]any{"target_amount": 0}, http.StatusBadRequest)
	suite.request(http.MethodPatch, path, map[string]any{"name": nil}, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, path, map[string]any{"name": "  "}, http.StatusBadRequest)
	suite.Equal("name must not be blank", suite.decodeError(&r).Detail["name"])
	suite.request(http.MethodPatch, "http://example.com/goals/"+uuid.NewString(), map[string]any{"name": "X"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteGoal() {
	goal := suite.createTestGoal(map[string]any{"name": "Car", "target_amount": 10000})

	r := suite.request(http.MethodDelete, "http://example.com/goals/"+goal.ID.String(), nil, http.StatusOK)
	var response deleteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Equal(int64(1), response.Deleted)

	suite.request(http.MethodGet, "http://example.com/goals/"+goal.ID.String(), nil, http.StatusNotFound)
	suite.request(http.MethodOptions, "http://example.com/goals/"+goal.ID.String(), nil, http.StatusNotFound)
}
