package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for the auth middleware
func asUser(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CurrentUserKey, user)
		}
		c.Next()
	}
}

func testUser() *domain.User {
	return &domain.User{ID: 1, Username: "a@example.com", Role: domain.RoleUser}
}

func testAdmin() *domain.User {
	return &domain.User{ID: 2, Username: "root@example.com", Role: domain.RoleAdmin}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
