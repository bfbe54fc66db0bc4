package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/mocks"
)

func newAuthRouter(authSvc *mocks.MockAuthService) *gin.Engine {
	h := NewAuthHandlers(authSvc)
	r := gin.New()
	r.POST("/token", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	return r
}

func pairFor(user *domain.User) *domain.AuthResult {
	return &domain.AuthResult{User: user, AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 1800}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful login",
			form: url.Values{"username": {"a@example.com"}, "password": {"pw1"}},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, username, password string) (*domain.AuthResult, error) {
					if username == "a@example.com" && password == "pw1" {
						return pairFor(testUser()), nil
					}
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			form:           url.Values{"username": {"a@example.com"}, "password": {"nope"}},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  domain.ErrInvalidCredentials.Error(),
		},
		{
			name:           "missing password",
			form:           url.Values{"username": {"a@example.com"}},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			r := newAuthRouter(authSvc)

			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusOK {
				if body["access_token"] != "access-token" || body["refresh_token"] != "refresh-token" {
					t.Errorf("unexpected token body %v", body)
				}
				if body["token_type"] != "bearer" {
					t.Errorf("expected token_type bearer, got %v", body["token_type"])
				}
				return
			}
			if tt.expectedError != "" && body["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, body["error"])
			}
			if tt.expectedStatus == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("expected a Bearer challenge on 401")
			}
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	var seen string
	authSvc := mocks.NewMockAuthService()
	authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
		seen = refreshToken
		if refreshToken == "good" {
			return pairFor(testUser()), nil
		}
		return nil, domain.ErrTokenExpired
	}
	r := newAuthRouter(authSvc)

	t.Run("token in JSON body", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/refresh", RefreshRequest{RefreshToken: "good"})
		if w.Code != http.StatusOK || seen != "good" {
			t.Fatalf("expected 200 for body token, got %d (seen %q)", w.Code, seen)
		}
	})

	t.Run("token in query", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/refresh?refresh_token=good", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for query token, got %d", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/refresh", RefreshRequest{RefreshToken: "old"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("no token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/refresh", map[string]string{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_Logout(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LogoutFunc = func(ctx context.Context, refreshToken string) error {
		if refreshToken == "revoked" {
			return domain.ErrTokenRevoked
		}
		return nil
	}
	r := newAuthRouter(authSvc)

	if w := doJSON(t, r, http.MethodPost, "/logout", RefreshRequest{RefreshToken: "good"}); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/logout", RefreshRequest{RefreshToken: "revoked"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a revoked token, got %d", w.Code)
	}
}
