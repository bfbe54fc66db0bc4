package mocks

import (
	"context"

	"github.com/you/contactsvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	AuthenticateFunc       func(ctx context.Context, username, password string) (*domain.User, error)
	LoginFunc              func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	RefreshFunc            func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc             func(ctx context.Context, refreshToken string) error
	ResolveCurrentUserFunc func(ctx context.Context, bearerToken string) (*domain.User, error)
	RequireRoleFunc        func(user *domain.User, roles ...domain.Role) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Authenticate checks credentials
func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// Login authenticates and issues a token pair
func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// Refresh exchanges a refresh token for a new pair
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

// Logout revokes a refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

// ResolveCurrentUser maps a bearer token to its user
func (m *MockAuthService) ResolveCurrentUser(ctx context.Context, bearerToken string) (*domain.User, error) {
	if m.ResolveCurrentUserFunc != nil {
		return m.ResolveCurrentUserFunc(ctx, bearerToken)
	}
	// Default behavior: every token is rejected
	return nil, domain.ErrUnauthorized
}

// RequireRole checks the user's role
func (m *MockAuthService) RequireRole(user *domain.User, roles ...domain.Role) (*domain.User, error) {
	if m.RequireRoleFunc != nil {
		return m.RequireRoleFunc(user, roles...)
	}
	if user == nil || !user.HasRole(roles...) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
