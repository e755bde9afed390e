package handlers

import (
	"fmt"
	"net/http"
)

func (s *E2ETestSuite) Test10_CreateExpense() {
	data := s.createExpense(s.aliceToken, "2024-03-01", "food", 1500)
	s.aliceExpenseID = int(data["id"].(float64))
	s.Equal("food", data["category"])
	s.Equal(float64(1500), data["amount"])
}

func (s *E2ETestSuite) Test11_CreateExpenseNegativeAmount() {
	status, body := s.request(http.MethodPost, "/api/expenses", s.aliceToken, map[string]interface{}{
		"date":     "2024-03-01",
		"category": "food",
		"amount":   -5,
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION_ERROR", errorCode(body))
}

func (s *E2ETestSuite) Test12_CreateExpenseBadDate() {
	status, body := s.request(http.MethodPost, "/api/expenses", s.aliceToken, map[string]interface{}{
		"date":     "03/01/2024",
		"category": "food",
		"amount":   100,
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION_ERROR", errorCode(body))
}

func (s *E2ETestSuite) Test13_GetExpenseByID() {
	status, body := s.request(http.MethodGet, fmt.Sprintf("/api/expenses/%d", s.aliceExpenseID), s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.Equal("food", data["category"])
	s.Equal(float64(1500), data["amount"])
	s.Nil(data["description"])
}

func (s *E2ETestSuite) Test14_GetExpenseOfOtherUserForbidden() {
	status, body := s.request(http.MethodGet, fmt.Sprintf("/api/expenses/%d", s.aliceExpenseID), s.bobToken, nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", errorCode(body))
}

func (s *E2ETestSuite) Test15_GetExpenseNotFound() {
	status, body := s.request(http.MethodGet, "/api/expenses/999999", s.aliceToken, nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", errorCode(body))
}

func (s *E2ETestSuite) Test16_GetExpensesByDate() {
	status, body := s.request(http.MethodGet, "/api/expenses/date/2024-03-01", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	list := dataList(body)
	s.Require().Len(list, 1)
	entry := list[0].(map[string]interface{})
	s.Equal(float64(1500), entry["amount"])
}

func (s *E2ETestSuite) Test17_GetExpensesRangeEmpty() {
	status, body := s.request(http.MethodGet, "/api/expenses?startDate=2024-02-01&endDate=2024-02-28", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	s.Empty(dataList(body))
}

func (s *E2ETestSuite) Test18_GetExpensesOrderedByDateDesc() {
	data := s.createExpense(s.aliceToken, "2024-03-05", "transport", 900)
	s.secondExpenseID = int(data["id"].(float64))

	status, body := s.request(http.MethodGet, "/api/expenses", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	list := dataList(body)
	s.Require().Len(list, 2)
	first := list[0].(map[string]interface{})
	second := list[1].(map[string]interface{})
	s.Equal("transport", first["category"])
	s.Equal("food", second["category"])

	// Range listing keeps the same order.
	status, body = s.request(http.MethodGet, "/api/expenses?startDate=2024-03-01&endDate=2024-03-31", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	s.Len(dataList(body), 2)
}

func (s *E2ETestSuite) Test19_GetExpensesSingleBoundRejected() {
	status, body := s.request(http.MethodGet, "/api/expenses?startDate=2024-03-01", s.aliceToken, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION_ERROR", errorCode(body))
}

func (s *E2ETestSuite) Test20_GetExpensesByMonth() {
	status, body := s.request(http.MethodGet, "/api/expenses/month/2024-03", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	s.Len(dataList(body), 2)

	status, body = s.request(http.MethodGet, "/api/expenses/month/2024-02", s.aliceToken, nil)
	s.Equal(http.StatusOK, status)
	s.Empty(dataList(body))
}

func (s *E2ETestSuite) Test21_UpdateExpensePartial() {
	status, body := s.request(http.MethodPut, fmt.Sprintf("/api/expenses/%d", s.aliceExpenseID), s.aliceToken, map[string]interface{}{
		"category": "groceries",
	})
	s.Equal(http.StatusOK, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.Equal("groceries", data["category"])
	// Untouched fields keep their stored values.
	s.Equal(float64(1500), data["amount"])
	s.Contains(data["date"], "2024-03-01")
}

func (s *E2ETestSuite) Test22_UpdateExpenseOfOtherUserForbidden() {
	status, body := s.request(http.MethodPut, fmt.Sprintf("/api/expenses/%d", s.aliceExpenseID), s.bobToken, map[string]interface{}{
		"category": "stolen",
	})
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", errorCode(body))
}

func (s *E2ETestSuite) Test23_DeleteExpenseOfOtherUserForbidden() {
	status, body := s.request(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", s.aliceExpenseID), s.bobToken, nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", errorCode(body))
}

func (s *E2ETestSuite) Test24_DeleteExpense() {
	status, _ := s.request(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", s.secondExpenseID), s.aliceToken, nil)
	s.Equal(http.StatusOK, status)

	status, body := s.request(http.MethodGet, fmt.Sprintf("/api/expenses/%d", s.secondExpenseID), s.aliceToken, nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", errorCode(body))
}
