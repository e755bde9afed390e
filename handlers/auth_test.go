package handlers

import "net/http"

func (s *E2ETestSuite) Test01_RegisterAlice() {
	status, body := s.registerUser("alice", "alicepass123", "alice@example.com")
	s.Equal(http.StatusCreated, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.aliceToken = data["token"].(string)
	s.NotEmpty(s.aliceToken)

	user := data["user"].(map[string]interface{})
	s.Equal("alice", user["username"])
	s.Equal("alice@example.com", user["email"])
	s.Nil(user["passwordHash"])
}

func (s *E2ETestSuite) Test02_RegisterDuplicateUsername() {
	status, body := s.registerUser("alice", "otherpass123", "other@example.com")
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", errorCode(body))
}

func (s *E2ETestSuite) Test03_RegisterDuplicateEmail() {
	status, body := s.registerUser("alice2", "otherpass123", "alice@example.com")
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", errorCode(body))
}

func (s *E2ETestSuite) Test04_RegisterShortUsername() {
	status, body := s.registerUser("al", "alicepass123", "al@example.com")
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION_ERROR", errorCode(body))
}

func (s *E2ETestSuite) Test05_LoginWrongPassword() {
	status, body := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrongpass",
	})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("UNAUTHORIZED", errorCode(body))
}

func (s *E2ETestSuite) Test06_LoginAlice() {
	status, body := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "alicepass123",
	})
	s.Equal(http.StatusOK, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.aliceToken = data["token"].(string)
	s.NotEmpty(s.aliceToken)
}

func (s *E2ETestSuite) Test07_RegisterBob() {
	status, body := s.registerUser("bob", "bobpass12345", "bob@example.com")
	s.Equal(http.StatusCreated, status)
	data := dataField(body)
	s.Require().NotNil(data)
	s.bobToken = data["token"].(string)
	s.NotEmpty(s.bobToken)
}

func (s *E2ETestSuite) Test08_Logout() {
	status, _ := s.request(http.MethodPost, "/api/auth/logout", "", nil)
	s.Equal(http.StatusOK, status)
}

func (s *E2ETestSuite) Test09_MissingTokenRejected() {
	status, body := s.request(http.MethodGet, "/api/expenses", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("UNAUTHORIZED", errorCode(body))

	status, body = s.request(http.MethodGet, "/api/expenses", "not-a-valid-token", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("INVALID_TOKEN", errorCode(body))
}
