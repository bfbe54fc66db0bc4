package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/mocks"
)

// authTestDeps holds the mocks behind an AuthService under test
type authTestDeps struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	revocations *mocks.MockRevocationStore
	audit       *mocks.MockAuditLogger
}

func newAuthTestDeps() *authTestDeps {
	return &authTestDeps{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		revocations: mocks.NewMockRevocationStore(),
		audit:       mocks.NewMockAuditLogger(),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, deps *authTestDeps, opts AuthOptions) domain.AuthService {
	t.Helper()
	return NewAuthService(deps.userRepo, deps.passwordSvc, deps.tokenSvc, deps.revocations, deps.audit, opts)
}

// userTestDeps holds the mocks behind a UserService under test
type userTestDeps struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	revocations *mocks.MockRevocationStore
	notifier    *mocks.MockNotificationService
	images      *mocks.MockImageHost
	processor   *mocks.MockImageProcessor
	audit       *mocks.MockAuditLogger
}

func newUserTestDeps() *userTestDeps {
	return &userTestDeps{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		revocations: mocks.NewMockRevocationStore(),
		notifier:    mocks.NewMockNotificationService(),
		images:      mocks.NewMockImageHost(),
		processor:   mocks.NewMockImageProcessor(),
		audit:       mocks.NewMockAuditLogger(),
	}
}

// createUserServiceForTest creates a UserService with mock dependencies for testing
func createUserServiceForTest(t *testing.T, deps *userTestDeps, opts UserOptions) domain.UserService {
	t.Helper()
	return NewUserService(UserDeps{
		Users:       deps.userRepo,
		Passwords:   deps.passwordSvc,
		Tokens:      deps.tokenSvc,
		Revocations: deps.revocations,
		Notifier:    deps.notifier,
		Images:      deps.images,
		Processor:   deps.processor,
		Audit:       deps.audit,
	}, opts)
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Username:     "test@example.com",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleUser,
		IsVerified:   true,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createAdminUser creates an admin user entity for testing
func createAdminUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 2
	user.Username = "admin@example.com"
	user.Role = domain.RoleAdmin
	return user
}

// findByUsernameReturning makes the repository resolve exactly the given users
func findByUsernameReturning(users ...*domain.User) func(ctx context.Context, username string) (*domain.User, error) {
	return func(ctx context.Context, username string) (*domain.User, error) {
		for _, u := range users {
			if u.Username == username {
				copied := *u
				return &copied, nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
}

// assertAuthResult validates the structure and content of an AuthResult
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedUser *domain.User) {
	t.Helper()

	if result == nil {
		t.Fatal("AuthResult is nil")
	}
	if result.User == nil {
		t.Fatal("AuthResult.User is nil")
	}
	if result.User.ID != expectedUser.ID {
		t.Errorf("expected user ID %d, got %d", expectedUser.ID, result.User.ID)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken is empty")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken is empty")
	}
	if result.AccessToken == result.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}
	if result.ExpiresIn <= 0 {
		t.Errorf("expected positive ExpiresIn, got %d", result.ExpiresIn)
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// hasEvent reports whether the audit logger recorded eventType
func hasEvent(audit *mocks.MockAuditLogger, eventType domain.AuditEventType) bool {
	for _, e := range audit.Types() {
		if e == eventType {
			return true
		}
	}
	return false
}
