package mocks

import (
	"context"
	"fmt"
	"io"

	"github.com/you/contactsvc/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	RegisterFunc             func(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	VerifyEmailFunc          func(ctx context.Context, token string) error
	RequestPasswordResetFunc func(ctx context.Context, username string) (string, error)
	ConfirmPasswordResetFunc func(ctx context.Context, token, newPassword string) error
	UpdateAvatarFunc         func(ctx context.Context, user *domain.User, image io.Reader) (string, error)
	GetProfileFunc           func(ctx context.Context, userID uint) (*domain.User, error)
	DeleteUserFunc           func(ctx context.Context, actor *domain.User, userID uint) error
	EnsureAdminFunc          func(ctx context.Context, username, password string) (*domain.User, error)
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password, role)
	}
	// Default behavior: return a mock user
	return &domain.User{ID: 1, Username: username, PasswordHash: "hashed_" + password, Role: role}, nil
}

func (m *MockUserService) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *MockUserService) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, username)
	}
	return "reset_password|" + username + "|", nil
}

func (m *MockUserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if m.ConfirmPasswordResetFunc != nil {
		return m.ConfirmPasswordResetFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, user *domain.User, image io.Reader) (string, error) {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, user, image)
	}
	return fmt.Sprintf("https://images.test/avatars/%d", user.ID), nil
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) DeleteUser(ctx context.Context, actor *domain.User, userID uint) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, actor, userID)
	}
	return nil
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	if m.EnsureAdminFunc != nil {
		return m.EnsureAdminFunc(ctx, username, password)
	}
	return &domain.User{ID: 1, Username: username, Role: domain.RoleAdmin, IsVerified: true}, nil
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
