package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/you/contactsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens have the readable form "<purpose>|<subject>|<role>".
type MockTokenService struct {
	IssueFunc    func(subject string, purpose domain.TokenPurpose, role domain.Role) (*domain.IssuedToken, error)
	ValidateFunc func(token string, expected domain.TokenPurpose) (*domain.TokenClaims, error)
	TTLFunc      func(purpose domain.TokenPurpose) time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue returns a token for subject
func (m *MockTokenService) Issue(subject string, purpose domain.TokenPurpose, role domain.Role) (*domain.IssuedToken, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, purpose, role)
	}
	now := time.Now()
	return &domain.IssuedToken{
		Token: fmt.Sprintf("%s|%s|%s", purpose, subject, role),
		Claims: domain.TokenClaims{
			ID:        fmt.Sprintf("jti-%s-%s", purpose, subject),
			Subject:   subject,
			Purpose:   purpose,
			Role:      role,
			IssuedAt:  now,
			ExpiresAt: now.Add(m.TTL(purpose)),
		},
	}, nil
}

// Validate checks a token against the expected purpose
func (m *MockTokenService) Validate(token string, expected domain.TokenPurpose) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token, expected)
	}
	// Default behavior: parse the readable format produced by Issue
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, domain.ErrTokenMalformed
	}
	purpose := domain.TokenPurpose(parts[0])
	if purpose != expected {
		return nil, domain.ErrTokenPurpose
	}
	now := time.Now()
	return &domain.TokenClaims{
		ID:        fmt.Sprintf("jti-%s-%s", purpose, parts[1]),
		Subject:   parts[1],
		Purpose:   purpose,
		Role:      domain.Role(parts[2]),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.TTL(purpose)),
	}, nil
}

// TTL returns the lifetime of a purpose
func (m *MockTokenService) TTL(purpose domain.TokenPurpose) time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc(purpose)
	}
	switch purpose {
	case domain.PurposeRefresh:
		return 7 * 24 * time.Hour
	case domain.PurposeVerifyEmail:
		return 24 * time.Hour
	case domain.PurposeResetPassword:
		return time.Hour
	}
	return 30 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
