package handlers

import (
	"fmt"
	"net/http"
)

func (s *E2ETestSuite) Test30_CreateBudget() {
	status, body := s.request(http.MethodPost, "/api/budgets", s.aliceToken, map[string]interface{}{
		"month":       "2024-03",
		"totalBudget": 500000,
	})
	s.Equal(http.StatusCreated, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.aliceBudgetID = int(data["id"].(float64))
	s.Equal("2024-03", data["month"])
	s.Equal(float64(500000), data["totalBudget"])
}

func (s *E2ETestSuite) Test31_CreateBudgetDuplicateMonth() {
	status, body := s.request(http.MethodPost, "/api/budgets", s.aliceToken, map[string]interface{}{
		"month":       "2024-03",
		"totalBudget": 100000,
	})
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", errorCode(body))
}

func (s *E2ETestSuite) Test32_CreateBudgetInvalidMonth() {
	status, body := s.request(http.MethodPost, "/api/budgets", s.aliceToken, map[string]interface{}{
		"month":       "March 2024",
		"totalBudget": 100000,
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION_ERROR", errorCode(body))
}

func (s *E2ETestSuite) Test33_GetBudgetByMonth() {
	status, body := s.request(http.MethodGet, "/api/budgets/2024-03", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.Equal(float64(500000), data["totalBudget"])
}

func (s *E2ETestSuite) Test34_GetBudgetMissingMonth() {
	status, body := s.request(http.MethodGet, "/api/budgets/2030-01", s.aliceToken, nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", errorCode(body))
}

func (s *E2ETestSuite) Test35_BudgetsAreScopedPerUser() {
	// Bob has no budget for the month Alice filled in.
	status, body := s.request(http.MethodGet, "/api/budgets/2024-03", s.bobToken, nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", errorCode(body))
}

func (s *E2ETestSuite) Test36_UpdateBudgetPartial() {
	status, body := s.request(http.MethodPut, fmt.Sprintf("/api/budgets/%d", s.aliceBudgetID), s.aliceToken, map[string]interface{}{
		"totalBudget": 600000,
	})
	s.Equal(http.StatusOK, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.Equal(float64(600000), data["totalBudget"])
	s.Equal("2024-03", data["month"])
}

func (s *E2ETestSuite) Test37_UpdateBudgetOfOtherUserForbidden() {
	status, body := s.request(http.MethodPut, fmt.Sprintf("/api/budgets/%d", s.aliceBudgetID), s.bobToken, map[string]interface{}{
		"totalBudget": 1,
	})
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", errorCode(body))
}

func (s *E2ETestSuite) Test38_UpdateBudgetIntoOccupiedMonthConflicts() {
	status, body := s.request(http.MethodPost, "/api/budgets", s.aliceToken, map[string]interface{}{
		"month":       "2024-04",
		"totalBudget": 400000,
	})
	s.Require().Equal(http.StatusCreated, status)
	s.aprilBudgetID = int(dataField(body)["id"].(float64))

	status, body = s.request(http.MethodPut, fmt.Sprintf("/api/budgets/%d", s.aprilBudgetID), s.aliceToken, map[string]interface{}{
		"month": "2024-03",
	})
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", errorCode(body))
}
